package badge

import "time"

// Badge ids form a closed set; evaluation never emits anything else.
const (
	FirstBlood   = "first_blood"
	PerfectNight = "perfect_night"
	UpsetKing    = "upset_king"
	HotStreak5   = "hot_streak_5"
	HotStreak10  = "hot_streak_10"
	IronPicker   = "iron_picker"
	Sharpshooter = "sharpshooter"
	CenturyClub  = "century_club"
)

// Definition describes one badge in the catalog.
type Definition struct {
	ID          string
	Name        string
	Description string
}

// Badge is a definition stamped with the moment a user earned it.
type Badge struct {
	ID          string
	Name        string
	Description string
	EarnedAt    time.Time
}

var catalog = []Definition{
	{ID: FirstBlood, Name: "First Blood", Description: "Make your first correct pick"},
	{ID: PerfectNight, Name: "Perfect Night", Description: "Go 3-for-3 or better in a single night"},
	{ID: UpsetKing, Name: "Upset King", Description: "Nail 5 upset picks"},
	{ID: HotStreak5, Name: "Hot Streak", Description: "5 correct picks in a row"},
	{ID: HotStreak10, Name: "On Fire", Description: "10 correct picks in a row"},
	{ID: IronPicker, Name: "Iron Picker", Description: "Make picks 7 days in a row"},
	{ID: Sharpshooter, Name: "Sharpshooter", Description: "70% accuracy over 50+ picks"},
	{ID: CenturyClub, Name: "Century Club", Description: "100 correct picks"},
}

// Catalog returns the full badge catalog in display order.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// Lookup resolves a badge definition by id.
func Lookup(id string) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
