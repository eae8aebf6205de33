package scoring

import (
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/team"
)

const (
	basePoints        = 10
	heavyUpsetBonus   = 10
	upsetBonus        = 5
	heavyDeficit      = 5
	minStreakForBonus = 2
	perfectNightMin   = 3
)

// Upset classifies a pick against the two teams' records.
type Upset struct {
	IsUpset bool
	IsHeavy bool
}

// Breakdown itemizes the points awarded for one resolved pick.
type Breakdown struct {
	Base        int
	UpsetBonus  int
	StreakBonus int
	Total       int
}

// DetectUpset compares the picked team's win count against the opponent's.
// A team with equal or more wins than its opponent is never an upset pick;
// heavy means the win deficit is at least 5. Unknown teams are never upsets.
func DetectUpset(g game.Game, pickedTeamID string) Upset {
	picked, ok := g.Team(pickedTeamID)
	if !ok {
		return Upset{}
	}
	opponent, _ := g.Opponent(pickedTeamID)

	pickedWins := team.ParseRecord(picked.Record).Wins
	opponentWins := team.ParseRecord(opponent.Record).Wins
	if pickedWins >= opponentWins {
		return Upset{}
	}

	return Upset{
		IsUpset: true,
		IsHeavy: opponentWins-pickedWins >= heavyDeficit,
	}
}

// PickPoints computes the breakdown for one pick. currentStreak is the
// user's consecutive-correct count before this pick resolves; callers are
// responsible for resolving a user's picks in temporal order. A pick on a
// game with no winner, or on the losing side, scores zero across the board.
func PickPoints(p pick.Pick, g game.Game, currentStreak int) Breakdown {
	winnerID, ok := game.WinnerID(g)
	if !ok || p.PickedTeamID != winnerID {
		return Breakdown{}
	}

	b := Breakdown{Base: basePoints}

	upset := DetectUpset(g, p.PickedTeamID)
	switch {
	case upset.IsHeavy:
		b.UpsetBonus = heavyUpsetBonus
	case upset.IsUpset:
		b.UpsetBonus = upsetBonus
	}

	if currentStreak >= minStreakForBonus {
		b.StreakBonus = currentStreak * 2
	}

	b.Total = b.Base + b.UpsetBonus + b.StreakBonus
	return b
}

// IsPerfectNight reports whether a day's picks qualify as perfect: at least
// 3 picks made, at least 3 of them on games that reached final, and every
// finalized pick correct. Picks still pending do not spoil an otherwise
// perfect night, but fewer than 3 finalized correct picks never qualifies.
func IsPerfectNight(picks []pick.Pick, games []game.Game) bool {
	if len(picks) < perfectNightMin {
		return false
	}

	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	finals := 0
	for _, p := range picks {
		g, ok := gamesByID[p.GameID]
		if !ok || !g.IsFinal() {
			continue
		}
		finals++
		if p.Result != pick.ResultCorrect {
			return false
		}
	}

	return finals >= perfectNightMin
}
