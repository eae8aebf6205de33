package badge

import (
	"testing"
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/team"
	"github.com/pickrush/pickrush/internal/domain/user"
)

var evalNow = time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

func earnedIDs(badges []Badge) map[string]bool {
	ids := make(map[string]bool, len(badges))
	for _, b := range badges {
		ids[b.ID] = true
	}
	return ids
}

func picksOnDates(dates ...string) []pick.Pick {
	picks := make([]pick.Pick, 0, len(dates))
	for i, d := range dates {
		picks = append(picks, pick.Pick{ID: string(rune('a' + i)), Date: d})
	}
	return picks
}

func TestEvaluateNew_FirstBlood(t *testing.T) {
	t.Parallel()

	got := EvaluateNew(user.User{CorrectPicks: 1, TotalPicks: 1}, nil, nil, nil, evalNow)
	ids := earnedIDs(got)
	if !ids[FirstBlood] {
		t.Fatal("expected first_blood")
	}
	if len(got) != 1 {
		t.Fatalf("expected only first_blood, got %d badges", len(got))
	}
	if !got[0].EarnedAt.Equal(evalNow) {
		t.Fatalf("EarnedAt = %v, want %v", got[0].EarnedAt, evalNow)
	}
}

func TestEvaluateNew_NeverReemitsHeldBadges(t *testing.T) {
	t.Parallel()

	u := user.User{
		CorrectPicks:  7,
		TotalPicks:    10,
		CurrentStreak: 6,
		Badges: []user.EarnedBadge{
			{ID: FirstBlood, EarnedAt: evalNow.AddDate(0, -1, 0)},
			{ID: HotStreak5, EarnedAt: evalNow.AddDate(0, 0, -2)},
		},
	}

	got := EvaluateNew(u, nil, nil, nil, evalNow)
	if len(got) != 0 {
		t.Fatalf("expected no new badges, got %v", got)
	}
}

func TestEvaluateNew_Streaks(t *testing.T) {
	t.Parallel()

	u := user.User{CorrectPicks: 12, TotalPicks: 20, CurrentStreak: 10}
	ids := earnedIDs(EvaluateNew(u, nil, nil, nil, evalNow))
	if !ids[HotStreak5] || !ids[HotStreak10] {
		t.Fatalf("expected both streak badges, got %v", ids)
	}
}

func TestEvaluateNew_UpsetKing(t *testing.T) {
	t.Parallel()

	upsetWin := pick.Pick{Result: pick.ResultCorrect, PointsEarned: 15}
	plainWin := pick.Pick{Result: pick.ResultCorrect, PointsEarned: 10}
	loss := pick.Pick{Result: pick.ResultIncorrect}

	history := []pick.Pick{upsetWin, upsetWin, upsetWin, upsetWin, plainWin, loss}
	u := user.User{CorrectPicks: 5, TotalPicks: 6, Badges: []user.EarnedBadge{{ID: FirstBlood}}}

	if ids := earnedIDs(EvaluateNew(u, nil, nil, history, evalNow)); ids[UpsetKing] {
		t.Fatal("four upset wins should not earn upset_king")
	}

	history = append(history, upsetWin)
	if ids := earnedIDs(EvaluateNew(u, nil, nil, history, evalNow)); !ids[UpsetKing] {
		t.Fatal("five upset wins should earn upset_king")
	}
}

func TestEvaluateNew_IronPicker(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		dates []string
		want  bool
	}{
		{
			name:  "seven consecutive days",
			dates: []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05", "2026-01-06", "2026-01-07"},
			want:  true,
		},
		{
			name:  "gap breaks the run",
			dates: []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"},
			want:  false,
		},
		{
			name:  "duplicate days collapse",
			dates: []string{"2026-01-01", "2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05", "2026-01-06"},
			want:  false,
		},
		{
			name: "run inside longer sparse history",
			dates: []string{
				"2025-12-20", "2026-01-10", "2026-01-11", "2026-01-12", "2026-01-13",
				"2026-01-14", "2026-01-15", "2026-01-16", "2026-02-01",
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ids := earnedIDs(EvaluateNew(user.User{}, nil, nil, picksOnDates(tc.dates...), evalNow))
			if ids[IronPicker] != tc.want {
				t.Fatalf("iron_picker = %t, want %t", ids[IronPicker], tc.want)
			}
		})
	}
}

func TestEvaluateNew_Sharpshooter(t *testing.T) {
	t.Parallel()

	if ids := earnedIDs(EvaluateNew(user.User{TotalPicks: 49, CorrectPicks: 49}, nil, nil, nil, evalNow)); ids[Sharpshooter] {
		t.Fatal("49 picks should not earn sharpshooter")
	}
	if ids := earnedIDs(EvaluateNew(user.User{TotalPicks: 50, CorrectPicks: 35}, nil, nil, nil, evalNow)); !ids[Sharpshooter] {
		t.Fatal("50 picks at exactly 70% should earn sharpshooter")
	}
	if ids := earnedIDs(EvaluateNew(user.User{TotalPicks: 50, CorrectPicks: 34}, nil, nil, nil, evalNow)); ids[Sharpshooter] {
		t.Fatal("68% accuracy should not earn sharpshooter")
	}
}

func TestEvaluateNew_PerfectNight(t *testing.T) {
	t.Parallel()

	score := 100
	lower := 90
	games := make([]game.Game, 3)
	picks := make([]pick.Pick, 3)
	for i := range games {
		id := []string{"g1", "g2", "g3"}[i]
		games[i] = game.Game{
			ID:        id,
			HomeTeam:  team.Team{ID: "h" + id},
			AwayTeam:  team.Team{ID: "a" + id},
			HomeScore: &score,
			AwayScore: &lower,
			Status:    game.StatusFinal,
		}
		picks[i] = pick.Pick{GameID: id, Result: pick.ResultCorrect}
	}

	if ids := earnedIDs(EvaluateNew(user.User{}, picks, games, nil, evalNow)); !ids[PerfectNight] {
		t.Fatal("three correct finals should earn perfect_night")
	}

	picks[2].Result = pick.ResultIncorrect
	if ids := earnedIDs(EvaluateNew(user.User{}, picks, games, nil, evalNow)); ids[PerfectNight] {
		t.Fatal("an incorrect final should block perfect_night")
	}
}

func TestEvaluateNew_Idempotent(t *testing.T) {
	t.Parallel()

	u := user.User{CorrectPicks: 100, TotalPicks: 120, CurrentStreak: 11}
	first := EvaluateNew(u, nil, nil, nil, evalNow)
	if len(first) == 0 {
		t.Fatal("expected badges on first pass")
	}

	for _, b := range first {
		u.Badges = append(u.Badges, user.EarnedBadge{ID: b.ID, EarnedAt: b.EarnedAt})
	}
	if second := EvaluateNew(u, nil, nil, nil, evalNow); len(second) != 0 {
		t.Fatalf("second pass should add nothing, got %v", second)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	defs := Catalog()
	if len(defs) != 8 {
		t.Fatalf("catalog size = %d, want 8", len(defs))
	}
	if _, ok := Lookup(CenturyClub); !ok {
		t.Fatal("century_club missing from catalog")
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("unknown id should miss")
	}
}
