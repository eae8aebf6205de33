package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/platform/cache"
	"github.com/pickrush/pickrush/internal/platform/logging"
)

func statLeadersFixtures() (*stubGamesProvider, *stubBoxScoreProvider) {
	date := feedNow.Format("2006-01-02")

	final := finishGame(testGame("g1", "10-5", "5-10"), 110, 102)
	live := testGame("g2", "8-8", "8-8")
	live.Status = game.StatusInProgress

	football := finishGame(testGame("g3", "9-3", "3-9"), 24, 20)
	football.Sport = game.SportFootball

	games := &stubGamesProvider{byDate: map[string][]game.Game{
		date: {final, live, football},
	}}

	boxScores := &stubBoxScoreProvider{summaries: map[string]boxscore.BoxScore{
		"g1": {
			GameID: "g1",
			Teams: []boxscore.TeamBox{{
				TeamID: "g1-home",
				Athletes: []boxscore.AthleteLine{
					{AthleteID: "a1", Name: "Big Man", Stats: boxscore.StatLine{"PTS": 30, "REB": 10}},
					{AthleteID: "a2", Name: "Scorer", Stats: boxscore.StatLine{"PTS": 40}},
					{AthleteID: "a3", Name: "Bench", Stats: boxscore.StatLine{"PTS": 10}},
					{AthleteID: "a4", Name: "Cold Hands", Stats: boxscore.StatLine{"TO": 4}},
				},
			}},
		},
		"g3": {
			GameID: "g3",
			Teams: []boxscore.TeamBox{{
				TeamID: "g3-home",
				Athletes: []boxscore.AthleteLine{
					{AthleteID: "qb1", Name: "Gunslinger", Position: "QB", Stats: boxscore.StatLine{"PASS_YDS": 300, "PASS_TD": 2}},
				},
			}},
		},
	}}

	return games, boxScores
}

func newStatLeadersServiceForTest(games GamesProvider, boxScores BoxScoreProvider) *StatLeadersService {
	return NewStatLeadersService(games, boxScores, cache.NewStore(time.Minute), logging.NewNop())
}

func TestStatLeadersService_Leaders(t *testing.T) {
	t.Parallel()

	games, boxScores := statLeadersFixtures()
	svc := newStatLeadersServiceForTest(games, boxScores)
	date := feedNow.Format("2006-01-02")

	leaders, err := svc.Leaders(context.Background(), game.SportBasketball, date)
	if err != nil {
		t.Fatalf("Leaders: %v", err)
	}

	// Only the final basketball game contributes; a negative fantasy line
	// is dropped entirely.
	if len(leaders) != 3 {
		t.Fatalf("leaders = %d, want 3", len(leaders))
	}

	// Big Man (30 PTS, 10 REB) and Scorer (40 PTS) both land 60.0 and
	// share rank 1; the bench scorer falls to rank 3.
	if leaders[0].AthleteID != "a1" || leaders[0].FantasyPoints != 60 || leaders[0].Rank != 1 {
		t.Fatalf("leaders[0] = %+v", leaders[0])
	}
	if leaders[1].AthleteID != "a2" || leaders[1].Rank != 1 {
		t.Fatalf("leaders[1] = %+v", leaders[1])
	}
	if leaders[2].AthleteID != "a3" || leaders[2].Rank != 3 || leaders[2].FantasyPoints != 15 {
		t.Fatalf("leaders[2] = %+v", leaders[2])
	}

	if leaders[0].Headline != "30 PTS | 10 REB" {
		t.Fatalf("headline = %q", leaders[0].Headline)
	}
	if leaders[0].TeamID != "g1-home" || leaders[0].GameID != "g1" {
		t.Fatalf("leaders[0] attribution = %+v", leaders[0])
	}
}

func TestStatLeadersService_FiltersBySport(t *testing.T) {
	t.Parallel()

	games, boxScores := statLeadersFixtures()
	svc := newStatLeadersServiceForTest(games, boxScores)
	date := feedNow.Format("2006-01-02")

	leaders, err := svc.Leaders(context.Background(), game.SportFootball, date)
	if err != nil {
		t.Fatalf("Leaders: %v", err)
	}
	if len(leaders) != 1 || leaders[0].AthleteID != "qb1" {
		t.Fatalf("leaders = %+v, want only the quarterback", leaders)
	}
	// 300 pass yards and 2 touchdowns score 12 + 8.
	if leaders[0].FantasyPoints != 20 {
		t.Fatalf("fantasy points = %v, want 20", leaders[0].FantasyPoints)
	}
}

func TestStatLeadersService_MissingBoxScoreDegrades(t *testing.T) {
	t.Parallel()

	games, boxScores := statLeadersFixtures()
	delete(boxScores.summaries, "g1")
	svc := newStatLeadersServiceForTest(games, boxScores)

	leaders, err := svc.Leaders(context.Background(), game.SportBasketball, feedNow.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Leaders should degrade, got %v", err)
	}
	if len(leaders) != 0 {
		t.Fatalf("leaders = %+v, want none", leaders)
	}
}

func TestStatLeadersService_InvalidInput(t *testing.T) {
	t.Parallel()

	games, boxScores := statLeadersFixtures()
	svc := newStatLeadersServiceForTest(games, boxScores)

	if _, err := svc.Leaders(context.Background(), game.Sport("cricket"), "2026-03-14"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown sport err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Leaders(context.Background(), game.SportBasketball, "tomorrow"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date err = %v, want ErrInvalidInput", err)
	}
}
