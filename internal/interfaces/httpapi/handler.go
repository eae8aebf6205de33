package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pickrush/pickrush/internal/platform/logging"
	"github.com/pickrush/pickrush/internal/usecase"
)

type Handler struct {
	feedService        *usecase.FeedService
	picksService       *usecase.PicksService
	leaderboardService *usecase.LeaderboardService
	badgeService       *usecase.BadgeService
	statLeadersService *usecase.StatLeadersService
	resolutionService  *usecase.ResolutionService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	feedService *usecase.FeedService,
	picksService *usecase.PicksService,
	leaderboardService *usecase.LeaderboardService,
	badgeService *usecase.BadgeService,
	statLeadersService *usecase.StatLeadersService,
	resolutionService *usecase.ResolutionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		feedService:        feedService,
		picksService:       picksService,
		leaderboardService: leaderboardService,
		badgeService:       badgeService,
		statLeadersService: statLeadersService,
		resolutionService:  resolutionService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
