package pick

import (
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
)

// Pick results. A pick is pending until its game resolves, then is mutated
// exactly once to correct or incorrect and never touched again.
const (
	ResultPending   = "pending"
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
)

// Pick is one user's call on one game. The composite id acts as the natural
// key: re-picking the same game overwrites instead of duplicating.
type Pick struct {
	ID           string
	Username     string
	GameID       string
	Date         string // calendar day, YYYY-MM-DD
	PickedTeamID string
	SubmittedAt  time.Time
	Result       string
	PointsEarned int
	Sport        game.Sport
	Confidence   int // optional, 1-3; 0 when unset
}

// CompositeID derives the natural key for a user's pick on a game.
func CompositeID(username, gameID string) string {
	return username + "-" + gameID
}

// IsResolved reports whether the pick's game outcome has been applied.
func (p Pick) IsResolved() bool {
	return p.Result == ResultCorrect || p.Result == ResultIncorrect
}
