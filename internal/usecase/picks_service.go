package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/user"
	"github.com/pickrush/pickrush/internal/platform/logging"
)

// SubmitPickInput carries one pick submission.
type SubmitPickInput struct {
	Username   string
	GameID     string
	TeamID     string
	Confidence int
}

// PicksService handles pick submission and listing. A resubmission for the
// same game overwrites the earlier pick; the daily allowance counts
// distinct games, not submissions.
type PicksService struct {
	games    GamesProvider
	pickRepo pick.Repository
	userRepo user.Repository
	rules    pick.Rules
	logger   *logging.Logger
	now      func() time.Time
}

func NewPicksService(
	games GamesProvider,
	pickRepo pick.Repository,
	userRepo user.Repository,
	logger *logging.Logger,
) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PicksService{
		games:    games,
		pickRepo: pickRepo,
		userRepo: userRepo,
		rules:    pick.DefaultRules(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *PicksService) Submit(ctx context.Context, input SubmitPickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.Submit")
	defer span.End()

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return pick.Pick{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.GameID) == "" || strings.TrimSpace(input.TeamID) == "" {
		return pick.Pick{}, fmt.Errorf("%w: game id and team id are required", ErrInvalidInput)
	}

	g, found, err := s.games.GameByID(ctx, input.GameID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("%w: fetch game %s: %v", ErrDependencyUnavailable, input.GameID, err)
	}
	if !found {
		return pick.Pick{}, fmt.Errorf("%w: game %s", ErrNotFound, input.GameID)
	}

	existingToday, err := s.pickRepo.ListByUserAndDate(ctx, username, g.Date)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("list picks for day: %w", err)
	}

	now := s.now()
	candidate := pick.Pick{
		ID:           pick.CompositeID(username, g.ID),
		Username:     username,
		GameID:       g.ID,
		Date:         g.Date,
		PickedTeamID: input.TeamID,
		SubmittedAt:  now,
		Result:       pick.ResultPending,
		Sport:        g.Sport,
		Confidence:   input.Confidence,
	}

	if err := pick.ValidateSubmission(candidate, g, existingToday, now, s.rules); err != nil {
		return pick.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	repick := false
	for _, existing := range existingToday {
		if existing.GameID == g.ID {
			repick = true
			break
		}
	}

	if err := s.pickRepo.Upsert(ctx, candidate); err != nil {
		return pick.Pick{}, fmt.Errorf("save pick: %w", err)
	}

	if !repick {
		if err := s.bumpTotalPicks(ctx, username, now); err != nil {
			s.logger.WarnContext(ctx, "update user pick count failed", "username", username, "error", err)
		}
	}

	return candidate, nil
}

// bumpTotalPicks counts a newly picked game on the user aggregate,
// creating the aggregate on a user's very first pick.
func (s *PicksService) bumpTotalPicks(ctx context.Context, username string, now time.Time) error {
	aggregate, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !exists {
		aggregate = user.User{Username: username, CreatedAt: now}
	}
	aggregate.TotalPicks++
	if err := s.userRepo.Save(ctx, aggregate); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PicksService) ListForUser(ctx context.Context, username, date string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.ListForUser")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if strings.TrimSpace(date) == "" {
		picks, err := s.pickRepo.ListByUser(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("list picks: %w", err)
		}
		return picks, nil
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}
	picks, err := s.pickRepo.ListByUserAndDate(ctx, username, date)
	if err != nil {
		return nil, fmt.Errorf("list picks for day: %w", err)
	}
	return picks, nil
}

// GamesForDate passes provider game snapshots through to the API layer.
func (s *PicksService) GamesForDate(ctx context.Context, date string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksService.GamesForDate")
	defer span.End()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}
	games, err := s.games.GamesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch games for %s: %v", ErrDependencyUnavailable, date, err)
	}
	return games, nil
}
