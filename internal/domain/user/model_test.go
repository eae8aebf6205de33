package user

import (
	"testing"
	"time"

	"github.com/pickrush/pickrush/internal/domain/pick"
)

func TestApplyResolution(t *testing.T) {
	t.Parallel()

	u := User{Username: "sara", TotalPicks: 5, CorrectPicks: 2, CurrentStreak: 2, LongestStreak: 3}

	resolved := []pick.Pick{
		{Result: pick.ResultCorrect, PointsEarned: 10},
		{Result: pick.ResultCorrect, PointsEarned: 16},
		{Result: pick.ResultIncorrect},
		{Result: pick.ResultCorrect, PointsEarned: 10},
		{Result: pick.ResultPending},
	}

	got := ApplyResolution(u, resolved)

	if got.CorrectPicks != 5 {
		t.Fatalf("CorrectPicks = %d, want 5", got.CorrectPicks)
	}
	if got.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 4 {
		t.Fatalf("LongestStreak = %d, want 4", got.LongestStreak)
	}
	if got.TotalPoints != 36 || got.WeeklyPoints != 36 {
		t.Fatalf("points = (%d, %d), want (36, 36)", got.TotalPoints, got.WeeklyPoints)
	}
	if u.CorrectPicks != 2 {
		t.Fatal("ApplyResolution must not mutate its input")
	}
}

func TestRolledToWeek(t *testing.T) {
	t.Parallel()

	u := User{WeekNumber: 10, WeeklyPoints: 42, TotalPoints: 100}

	same := u.RolledToWeek(10)
	if same.WeeklyPoints != 42 {
		t.Fatalf("same week should keep weekly points, got %d", same.WeeklyPoints)
	}

	next := u.RolledToWeek(11)
	if next.WeeklyPoints != 0 || next.WeekNumber != 11 {
		t.Fatalf("rollover = (%d, %d), want (0, 11)", next.WeeklyPoints, next.WeekNumber)
	}
	if next.TotalPoints != 100 {
		t.Fatal("rollover must not touch total points")
	}
}

func TestWeekOf(t *testing.T) {
	t.Parallel()

	base := time.UnixMilli(0)
	if got := WeekOf(base); got != 1 {
		t.Fatalf("WeekOf(epoch) = %d, want 1", got)
	}
	if got := WeekOf(base.Add(7 * 24 * time.Hour)); got != 2 {
		t.Fatalf("WeekOf(epoch+7d) = %d, want 2", got)
	}
}

func TestAccuracyPct(t *testing.T) {
	t.Parallel()

	u := User{TotalPicks: 3, CorrectPicks: 2}
	if got := u.AccuracyPct(); got != 67 {
		t.Fatalf("AccuracyPct = %d, want 67", got)
	}
	if got := (User{}).AccuracyPct(); got != 0 {
		t.Fatalf("empty AccuracyPct = %d, want 0", got)
	}
}
