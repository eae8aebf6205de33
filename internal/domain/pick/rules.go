package pick

import (
	"errors"
	"fmt"
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
)

var (
	ErrDailyLimitReached  = errors.New("daily pick limit reached")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrTeamNotInGame      = errors.New("picked team is not in this game")
)

// Rules stores pick submission validation parameters.
type Rules struct {
	MaxGamesPerDay int
	MinConfidence  int
	MaxConfidence  int
}

func DefaultRules() Rules {
	return Rules{
		MaxGamesPerDay: 3,
		MinConfidence:  1,
		MaxConfidence:  3,
	}
}

// ValidateSubmission checks a pick against the target game and the user's
// existing picks for that day. A pick on an already-picked game counts as an
// overwrite, not a new game, and does not consume the daily allowance.
func ValidateSubmission(candidate Pick, g game.Game, existingToday []Pick, now time.Time, rules Rules) error {
	if candidate.Username == "" {
		return fmt.Errorf("username is required")
	}
	if candidate.GameID != g.ID {
		return fmt.Errorf("pick game id %q does not match game %q", candidate.GameID, g.ID)
	}
	if _, ok := g.Team(candidate.PickedTeamID); !ok {
		return fmt.Errorf("%w: team=%s game=%s", ErrTeamNotInGame, candidate.PickedTeamID, g.ID)
	}
	if candidate.Confidence != 0 &&
		(candidate.Confidence < rules.MinConfidence || candidate.Confidence > rules.MaxConfidence) {
		return fmt.Errorf("confidence must be between %d and %d", rules.MinConfidence, rules.MaxConfidence)
	}

	if g.Status != game.StatusScheduled || !now.Before(g.StartTime) {
		return fmt.Errorf("%w: game=%s", ErrGameAlreadyStarted, g.ID)
	}

	pickedGames := make(map[string]struct{}, len(existingToday))
	for _, existing := range existingToday {
		pickedGames[existing.GameID] = struct{}{}
	}
	if _, repick := pickedGames[candidate.GameID]; !repick && len(pickedGames) >= rules.MaxGamesPerDay {
		return fmt.Errorf("%w: max=%d", ErrDailyLimitReached, rules.MaxGamesPerDay)
	}

	return nil
}
