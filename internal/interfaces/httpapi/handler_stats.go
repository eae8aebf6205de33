package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/usecase"
)

type statLeaderDTO struct {
	Rank          int     `json:"rank"`
	AthleteID     string  `json:"athleteId"`
	AthleteName   string  `json:"athleteName"`
	Position      string  `json:"position,omitempty"`
	TeamID        string  `json:"teamId,omitempty"`
	GameID        string  `json:"gameId"`
	FantasyPoints float64 `json:"fantasyPoints"`
	Headline      string  `json:"headline,omitempty"`
}

func (h *Handler) ListStatLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStatLeaders")
	defer span.End()

	rawSport := strings.TrimSpace(r.URL.Query().Get("sport"))
	sport, ok := game.ParseSport(rawSport)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, rawSport))
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	leaders, err := h.statLeadersService.Leaders(ctx, sport, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list stat leaders failed", "sport", sport, "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statLeaderDTO, 0, len(leaders))
	for _, leader := range leaders {
		items = append(items, statLeaderDTO{
			Rank:          leader.Rank,
			AthleteID:     leader.AthleteID,
			AthleteName:   leader.AthleteName,
			Position:      leader.Position,
			TeamID:        leader.TeamID,
			GameID:        leader.GameID,
			FantasyPoints: leader.FantasyPoints,
			Headline:      leader.Headline,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
