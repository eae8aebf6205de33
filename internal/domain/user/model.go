package user

import (
	"math"
	"time"

	"github.com/pickrush/pickrush/internal/domain/pick"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   string
	Username string
	Email    string
}

// EarnedBadge records one badge held by a user. Badges are a one-way
// ratchet: evaluation only appends, never removes.
type EarnedBadge struct {
	ID       string
	EarnedAt time.Time
}

// User is the scoring aggregate for one picker.
//
// Invariants: CorrectPicks <= TotalPicks and CurrentStreak <= LongestStreak.
// TotalPicks counts submitted games (overwrites of the same game do not
// double count); the remaining counters move only through ApplyResolution.
type User struct {
	Username      string
	DisplayName   string
	TotalPicks    int
	CorrectPicks  int
	CurrentStreak int
	LongestStreak int
	TotalPoints   int
	WeeklyPoints  int
	WeekNumber    int
	Badges        []EarnedBadge
	CreatedAt     time.Time
}

// HasBadge reports whether the user already holds the badge id.
func (u User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Accuracy returns the correct-pick ratio, 0 when no picks were made.
func (u User) Accuracy() float64 {
	if u.TotalPicks == 0 {
		return 0
	}
	return float64(u.CorrectPicks) / float64(u.TotalPicks)
}

// AccuracyPct returns accuracy as a rounded whole percentage.
func (u User) AccuracyPct() int {
	return int(math.Round(u.Accuracy() * 100))
}

// WeekOf buckets a timestamp into the app-wide leaderboard week number.
func WeekOf(t time.Time) int {
	return int(t.UnixMilli()/604800000) + 1
}

// RolledToWeek zeroes the weekly points when the week has moved on.
func (u User) RolledToWeek(week int) User {
	if u.WeekNumber == week {
		return u
	}
	u.WeekNumber = week
	u.WeeklyPoints = 0
	return u
}

// ApplyResolution folds newly resolved picks into the aggregate. Picks must
// be supplied in resolution order (streaks depend on it) and must already
// carry their final Result and PointsEarned. Pending picks are skipped so a
// repeated application of an already-folded batch is the caller's bug to
// avoid, not detectable here.
func ApplyResolution(u User, resolved []pick.Pick) User {
	for _, p := range resolved {
		switch p.Result {
		case pick.ResultCorrect:
			u.CorrectPicks++
			u.CurrentStreak++
			if u.CurrentStreak > u.LongestStreak {
				u.LongestStreak = u.CurrentStreak
			}
			u.TotalPoints += p.PointsEarned
			u.WeeklyPoints += p.PointsEarned
		case pick.ResultIncorrect:
			u.CurrentStreak = 0
		}
	}
	return u
}
