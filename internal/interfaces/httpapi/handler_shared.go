package httpapi

import (
	"context"
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/team"
)

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
	Record       string `json:"record,omitempty"`
}

type gameDTO struct {
	ID        string  `json:"id"`
	Sport     string  `json:"sport"`
	Date      string  `json:"date"`
	HomeTeam  teamDTO `json:"homeTeam"`
	AwayTeam  teamDTO `json:"awayTeam"`
	HomeScore *int    `json:"homeScore,omitempty"`
	AwayScore *int    `json:"awayScore,omitempty"`
	Status    string  `json:"status"`
	StartTime string  `json:"startTime"`
}

type pickDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	GameID       string `json:"gameId"`
	Date         string `json:"date"`
	PickedTeamID string `json:"pickedTeamId"`
	SubmittedAt  string `json:"submittedAt"`
	Result       string `json:"result"`
	PointsEarned int    `json:"pointsEarned"`
	Sport        string `json:"sport"`
	Confidence   int    `json:"confidence,omitempty"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		DisplayName:  v.DisplayName,
		Abbreviation: v.Abbreviation,
		LogoURL:      v.LogoURL,
		Record:       v.Record,
	}
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:        v.ID,
		Sport:     string(v.Sport),
		Date:      v.Date,
		HomeTeam:  teamToDTO(ctx, v.HomeTeam),
		AwayTeam:  teamToDTO(ctx, v.AwayTeam),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Status:    v.Status,
		StartTime: v.StartTime.UTC().Format(time.RFC3339),
	}
}

func pickToDTO(ctx context.Context, v pick.Pick) pickDTO {
	ctx, span := startSpan(ctx, "httpapi.pickToDTO")
	defer span.End()

	return pickDTO{
		ID:           v.ID,
		Username:     v.Username,
		GameID:       v.GameID,
		Date:         v.Date,
		PickedTeamID: v.PickedTeamID,
		SubmittedAt:  v.SubmittedAt.UTC().Format(time.RFC3339),
		Result:       v.Result,
		PointsEarned: v.PointsEarned,
		Sport:        string(v.Sport),
		Confidence:   v.Confidence,
	}
}

func formatOptionalTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
