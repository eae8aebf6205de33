package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/pickrush/pickrush/internal/usecase"
)

type submitPickRequest struct {
	GameID     string `json:"game_id" validate:"required"`
	TeamID     string `json:"team_id" validate:"required"`
	Confidence int    `json:"confidence" validate:"omitempty,min=1,max=3"`
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	submitted, err := h.picksService.Submit(ctx, usecase.SubmitPickInput{
		Username:   principal.Username,
		GameID:     req.GameID,
		TeamID:     req.TeamID,
		Confidence: req.Confidence,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed", "username", principal.Username, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(ctx, submitted))
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	picks, err := h.picksService.ListForUser(ctx, principal.Username, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list picks failed", "username", principal.Username, "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(ctx, w, fmt.Errorf("%w: date query parameter is required", usecase.ErrInvalidInput))
		return
	}

	games, err := h.picksService.GamesForDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
