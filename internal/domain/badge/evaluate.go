package badge

import (
	"sort"
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/scoring"
	"github.com/pickrush/pickrush/internal/domain/user"
)

const (
	upsetKingMinWins     = 5
	ironPickerRunLength  = 7
	sharpshooterMinPicks = 50
	sharpshooterAccuracy = 0.70
	centuryClubMinWins   = 100
)

// EvaluateNew returns the badges u newly qualifies for, stamped with now.
// Already-held badges are never re-emitted; several rules may fire in one
// pass. Evaluation is a one-way ratchet: nothing here ever revokes a badge.
func EvaluateNew(u user.User, todayPicks []pick.Pick, todayGames []game.Game, allPicks []pick.Pick, now time.Time) []Badge {
	var earned []Badge
	award := func(id string) {
		if u.HasBadge(id) {
			return
		}
		def, ok := Lookup(id)
		if !ok {
			return
		}
		earned = append(earned, Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			EarnedAt:    now,
		})
	}

	if u.CorrectPicks >= 1 {
		award(FirstBlood)
	}
	if scoring.IsPerfectNight(todayPicks, todayGames) {
		award(PerfectNight)
	}
	if countUpsetWins(allPicks) >= upsetKingMinWins {
		award(UpsetKing)
	}
	if u.CurrentStreak >= 5 {
		award(HotStreak5)
	}
	if u.CurrentStreak >= 10 {
		award(HotStreak10)
	}
	if longestDailyRun(allPicks) >= ironPickerRunLength {
		award(IronPicker)
	}
	if u.TotalPicks >= sharpshooterMinPicks && u.Accuracy() >= sharpshooterAccuracy {
		award(Sharpshooter)
	}
	if u.CorrectPicks >= centuryClubMinWins {
		award(CenturyClub)
	}

	return earned
}

// countUpsetWins counts correct picks that carried an upset bonus, which is
// any resolved pick worth more than the flat base award.
func countUpsetWins(picks []pick.Pick) int {
	count := 0
	for _, p := range picks {
		if p.Result == pick.ResultCorrect && p.PointsEarned > 10 {
			count++
		}
	}
	return count
}

// longestDailyRun measures the longest run of consecutive calendar days on
// which the user made at least one pick. Same-day picks collapse into one
// date; any gap other than exactly one day resets the run.
func longestDailyRun(picks []pick.Pick) int {
	seen := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		if p.Date != "" {
			seen[p.Date] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for date := range seen {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
