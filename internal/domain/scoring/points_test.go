package scoring

import (
	"testing"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func finalGame(homeRecord, awayRecord string, homeScore, awayScore int) game.Game {
	return game.Game{
		ID:        "g1",
		Sport:     game.SportBasketball,
		HomeTeam:  team.Team{ID: "home", Record: homeRecord},
		AwayTeam:  team.Team{ID: "away", Record: awayRecord},
		HomeScore: intPtr(homeScore),
		AwayScore: intPtr(awayScore),
		Status:    game.StatusFinal,
	}
}

func TestDetectUpset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		homeRecord string
		awayRecord string
		picked     string
		want       Upset
	}{
		{name: "favorite is never an upset", homeRecord: "20-5", awayRecord: "10-15", picked: "home", want: Upset{}},
		{name: "equal wins is never an upset", homeRecord: "10-5", awayRecord: "10-8", picked: "home", want: Upset{}},
		{name: "mild underdog", homeRecord: "8-10", awayRecord: "11-7", picked: "home", want: Upset{IsUpset: true}},
		{name: "heavy underdog at exactly five", homeRecord: "5-15", awayRecord: "10-10", picked: "home", want: Upset{IsUpset: true, IsHeavy: true}},
		{name: "away underdog", homeRecord: "18-2", awayRecord: "3-17", picked: "away", want: Upset{IsUpset: true, IsHeavy: true}},
		{name: "unknown team", homeRecord: "5-5", awayRecord: "15-5", picked: "ghost", want: Upset{}},
		{name: "malformed records read as zero", homeRecord: "??", awayRecord: "??", picked: "home", want: Upset{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := finalGame(tc.homeRecord, tc.awayRecord, 100, 90)
			if got := DetectUpset(g, tc.picked); got != tc.want {
				t.Fatalf("DetectUpset = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPickPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*game.Game, *pick.Pick)
		streak int
		want   Breakdown
	}{
		{
			name:   "plain correct pick",
			mutate: func(*game.Game, *pick.Pick) {},
			want:   Breakdown{Base: 10, Total: 10},
		},
		{
			name:   "wrong side scores zero",
			mutate: func(_ *game.Game, p *pick.Pick) { p.PickedTeamID = "away" },
			streak: 7,
			want:   Breakdown{},
		},
		{
			name:   "game not final scores zero",
			mutate: func(g *game.Game, _ *pick.Pick) { g.Status = game.StatusInProgress },
			want:   Breakdown{},
		},
		{
			name:   "tied final scores zero",
			mutate: func(g *game.Game, _ *pick.Pick) { g.AwayScore = intPtr(*g.HomeScore) },
			want:   Breakdown{},
		},
		{
			name: "upset bonus",
			mutate: func(g *game.Game, _ *pick.Pick) {
				g.HomeTeam.Record = "8-10"
				g.AwayTeam.Record = "11-7"
			},
			want: Breakdown{Base: 10, UpsetBonus: 5, Total: 15},
		},
		{
			name: "heavy upset bonus",
			mutate: func(g *game.Game, _ *pick.Pick) {
				g.HomeTeam.Record = "3-17"
				g.AwayTeam.Record = "15-5"
			},
			want: Breakdown{Base: 10, UpsetBonus: 10, Total: 20},
		},
		{
			name:   "no streak bonus below two",
			mutate: func(*game.Game, *pick.Pick) {},
			streak: 1,
			want:   Breakdown{Base: 10, Total: 10},
		},
		{
			name:   "streak bonus activates at two",
			mutate: func(*game.Game, *pick.Pick) {},
			streak: 2,
			want:   Breakdown{Base: 10, StreakBonus: 4, Total: 14},
		},
		{
			name: "streak stacks with heavy upset",
			mutate: func(g *game.Game, _ *pick.Pick) {
				g.HomeTeam.Record = "3-17"
				g.AwayTeam.Record = "15-5"
			},
			streak: 6,
			want:   Breakdown{Base: 10, UpsetBonus: 10, StreakBonus: 12, Total: 32},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := finalGame("12-8", "12-8", 100, 90)
			p := pick.Pick{ID: "sara-g1", Username: "sara", GameID: "g1", PickedTeamID: "home"}
			tc.mutate(&g, &p)

			if got := PickPoints(p, g, tc.streak); got != tc.want {
				t.Fatalf("PickPoints = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestIsPerfectNight(t *testing.T) {
	t.Parallel()

	games := []game.Game{
		finalGame("10-5", "5-10", 100, 90),
		finalGame("10-5", "5-10", 80, 85),
		finalGame("10-5", "5-10", 70, 60),
	}
	games[1].ID = "g2"
	games[2].ID = "g3"

	live := games[2]
	live.ID = "g4"
	live.Status = game.StatusInProgress

	correct := func(gameID string) pick.Pick {
		return pick.Pick{GameID: gameID, Result: pick.ResultCorrect}
	}

	cases := []struct {
		name  string
		picks []pick.Pick
		games []game.Game
		want  bool
	}{
		{
			name:  "three correct finals",
			picks: []pick.Pick{correct("g1"), correct("g2"), correct("g3")},
			games: games,
			want:  true,
		},
		{
			name:  "fewer than three picks",
			picks: []pick.Pick{correct("g1"), correct("g2")},
			games: games,
			want:  false,
		},
		{
			name:  "one finalized pick incorrect",
			picks: []pick.Pick{correct("g1"), correct("g2"), {GameID: "g3", Result: pick.ResultIncorrect}},
			games: games,
			want:  false,
		},
		{
			name:  "pending pick does not spoil it",
			picks: []pick.Pick{correct("g1"), correct("g2"), correct("g3"), {GameID: "g4", Result: pick.ResultPending}},
			games: append(append([]game.Game(nil), games...), live),
			want:  true,
		},
		{
			name:  "only two finals even with more pending",
			picks: []pick.Pick{correct("g1"), correct("g2"), {GameID: "g4", Result: pick.ResultPending}},
			games: append(append([]game.Game(nil), games...), live),
			want:  false,
		},
		{
			name:  "no picks",
			picks: nil,
			games: games,
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := IsPerfectNight(tc.picks, tc.games); got != tc.want {
				t.Fatalf("IsPerfectNight = %t, want %t", got, tc.want)
			}
		})
	}
}
