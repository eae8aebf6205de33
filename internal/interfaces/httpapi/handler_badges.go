package httpapi

import (
	"net/http"

	"github.com/pickrush/pickrush/internal/domain/badge"
)

type badgeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EarnedAt    string `json:"earnedAt,omitempty"`
}

func (h *Handler) ListBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBadgeCatalog")
	defer span.End()

	items := make([]badgeDTO, 0)
	for _, def := range h.badgeService.Catalog(ctx) {
		items = append(items, badgeDTO{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListUserBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserBadges")
	defer span.End()

	username := r.PathValue("username")
	badges, err := h.badgeService.UserBadges(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "list user badges failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]badgeDTO, 0, len(badges))
	for _, earned := range badges {
		items = append(items, earnedBadgeToDTO(earned))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func earnedBadgeToDTO(earned badge.Badge) badgeDTO {
	return badgeDTO{
		ID:          earned.ID,
		Name:        earned.Name,
		Description: earned.Description,
		EarnedAt:    formatOptionalTime(earned.EarnedAt),
	}
}
