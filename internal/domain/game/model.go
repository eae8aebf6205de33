package game

import (
	"strings"
	"time"

	"github.com/pickrush/pickrush/internal/domain/team"
)

// Sport enumerates the leagues the app serves.
type Sport string

const (
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportFootball   Sport = "football"
	SportHockey     Sport = "hockey"
)

// Sports lists every supported sport in a stable order.
var Sports = []Sport{SportBasketball, SportBaseball, SportFootball, SportHockey}

// ParseSport normalizes a raw sport value. Unknown values return false.
func ParseSport(raw string) (Sport, bool) {
	switch Sport(strings.ToLower(strings.TrimSpace(raw))) {
	case SportBasketball:
		return SportBasketball, true
	case SportBaseball:
		return SportBaseball, true
	case SportFootball:
		return SportFootball, true
	case SportHockey:
		return SportHockey, true
	default:
		return "", false
	}
}

// Game statuses move monotonically scheduled -> in_progress -> final.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinal      = "final"
)

// Game is a provider snapshot of one matchup. Scores are nil until play
// begins and are only authoritative once the status reaches final.
type Game struct {
	ID        string
	Sport     Sport
	Date      string // calendar day, YYYY-MM-DD
	HomeTeam  team.Team
	AwayTeam  team.Team
	HomeScore *int
	AwayScore *int
	Status    string
	StartTime time.Time
}

// IsFinal reports whether the game has finished.
func (g Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// IsLive reports whether the game is currently being played.
func (g Game) IsLive() bool {
	return g.Status == StatusInProgress
}

// HasScores reports whether both sides have a posted score.
func (g Game) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// WinnerID resolves the winning team of a finished game. It returns false
// when the game is not final, either score is missing, or the final scores
// are level. Tied finals deliberately resolve to no winner for every sport.
func WinnerID(g Game) (string, bool) {
	if !g.IsFinal() || !g.HasScores() {
		return "", false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam.ID, true
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam.ID, true
	default:
		return "", false
	}
}

// Team returns the side matching teamID, and false when neither side matches.
func (g Game) Team(teamID string) (team.Team, bool) {
	switch teamID {
	case g.HomeTeam.ID:
		return g.HomeTeam, true
	case g.AwayTeam.ID:
		return g.AwayTeam, true
	default:
		return team.Team{}, false
	}
}

// Opponent returns the side facing teamID, and false when neither side matches.
func (g Game) Opponent(teamID string) (team.Team, bool) {
	switch teamID {
	case g.HomeTeam.ID:
		return g.AwayTeam, true
	case g.AwayTeam.ID:
		return g.HomeTeam, true
	default:
		return team.Team{}, false
	}
}

// Margin returns the absolute score difference; ok is false without both scores.
func (g Game) Margin() (int, bool) {
	if !g.HasScores() {
		return 0, false
	}
	diff := *g.HomeScore - *g.AwayScore
	if diff < 0 {
		diff = -diff
	}
	return diff, true
}
