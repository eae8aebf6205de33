package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/pickrush/pickrush/internal/usecase"
)

// GetLeaderboard is public; when the caller is authenticated their own rank
// rides along even if they fall outside the visible entries.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	period := strings.TrimSpace(r.URL.Query().Get("period"))
	username := ""
	if principal, ok := principalFromContext(ctx); ok {
		username = principal.Username
	}

	board, err := h.leaderboardService.Get(ctx, period, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "period", period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, board))
}

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Points      int    `json:"points"`
	Correct     int    `json:"correct"`
	Total       int    `json:"total"`
	AccuracyPct int    `json:"accuracyPct"`
	Streak      int    `json:"streak"`
}

type leaderboardDTO struct {
	Period  string                `json:"period"`
	Week    int                   `json:"week"`
	Entries []leaderboardEntryDTO `json:"entries"`
	MyRank  int                   `json:"myRank,omitempty"`
}

func leaderboardToDTO(ctx context.Context, board usecase.Leaderboard) leaderboardDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardToDTO")
	defer span.End()

	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for _, entry := range board.Entries {
		entries = append(entries, leaderboardEntryDTO{
			Rank:        entry.Rank,
			Username:    entry.Username,
			DisplayName: entry.DisplayName,
			Points:      entry.Points,
			Correct:     entry.Correct,
			Total:       entry.Total,
			AccuracyPct: entry.AccuracyPct,
			Streak:      entry.Streak,
		})
	}

	return leaderboardDTO{
		Period:  board.Period,
		Week:    board.Week,
		Entries: entries,
		MyRank:  board.MyRank,
	}
}
