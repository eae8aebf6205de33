package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/performance"
	"github.com/pickrush/pickrush/internal/platform/cache"
	"github.com/pickrush/pickrush/internal/platform/logging"
)

const statLeadersMaxEntries = 25

// StatLeader is one ranked athlete for a day of games.
type StatLeader struct {
	Rank          int
	AthleteID     string
	AthleteName   string
	Position      string
	TeamID        string
	GameID        string
	FantasyPoints float64
	Headline      string
}

// StatLeadersService ranks athletes by fantasy production across the final
// games of a date. It shares the feed's box score cache so a busy night is
// fetched from the provider once.
type StatLeadersService struct {
	games     GamesProvider
	boxScores BoxScoreProvider
	cache     *cache.Store
	logger    *logging.Logger
}

func NewStatLeadersService(
	games GamesProvider,
	boxScores BoxScoreProvider,
	store *cache.Store,
	logger *logging.Logger,
) *StatLeadersService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if store == nil {
		store = cache.NewStore(0)
	}
	return &StatLeadersService{
		games:     games,
		boxScores: boxScores,
		cache:     store,
		logger:    logger,
	}
}

// Leaders computes the top fantasy scorers for one sport on one date.
// Athletes tied on points share a rank and the next distinct score skips
// past them.
func (s *StatLeadersService) Leaders(ctx context.Context, sport game.Sport, date string) ([]StatLeader, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatLeadersService.Leaders")
	defer span.End()

	profile, ok := performance.For(sport)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}

	games, err := s.games.GamesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch games for %s: %v", ErrDependencyUnavailable, date, err)
	}

	var leaders []StatLeader
	for _, g := range games {
		if g.Sport != sport || !g.IsFinal() {
			continue
		}
		summary, err := s.loadBoxScore(ctx, g.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "box score unavailable", "game_id", g.ID, "error", err)
			continue
		}
		for _, team := range summary.Teams {
			for _, athlete := range team.Athletes {
				points := profile.FantasyPoints(athlete)
				if points <= 0 {
					continue
				}
				leaders = append(leaders, StatLeader{
					AthleteID:     athlete.AthleteID,
					AthleteName:   athlete.Name,
					Position:      athlete.Position,
					TeamID:        team.TeamID,
					GameID:        g.ID,
					FantasyPoints: math.Round(points*10) / 10,
					Headline:      profile.Headline(athlete.Stats),
				})
			}
		}
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].FantasyPoints > leaders[j].FantasyPoints
	})
	if len(leaders) > statLeadersMaxEntries {
		leaders = leaders[:statLeadersMaxEntries]
	}

	for i := range leaders {
		if i > 0 && leaders[i].FantasyPoints == leaders[i-1].FantasyPoints {
			leaders[i].Rank = leaders[i-1].Rank
			continue
		}
		leaders[i].Rank = i + 1
	}
	return leaders, nil
}

func (s *StatLeadersService) loadBoxScore(ctx context.Context, gameID string) (boxscore.BoxScore, error) {
	value, err := s.cache.GetOrLoad(ctx, "boxscore:"+gameID, func(ctx context.Context) (any, error) {
		return s.boxScores.Summary(ctx, gameID)
	})
	if err != nil {
		return boxscore.BoxScore{}, err
	}
	summary, ok := value.(boxscore.BoxScore)
	if !ok {
		return boxscore.BoxScore{}, fmt.Errorf("unexpected cache value for game %s", gameID)
	}
	return summary, nil
}
