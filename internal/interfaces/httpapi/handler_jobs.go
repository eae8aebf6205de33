package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/pickrush/pickrush/internal/usecase"
)

// A resolution run re-enqueues itself for the next date so the nightly
// chain keeps going without an external scheduler.
const defaultResolveChainDelay = 24 * time.Hour

type resolvePicksJobRequest struct {
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ScheduleNext bool   `json:"schedule_next"`
}

type resolutionTaskDTO struct {
	Username      string   `json:"username"`
	ResolvedPicks int      `json:"resolvedPicks"`
	PointsAwarded int      `json:"pointsAwarded"`
	BadgesEarned  []string `json:"badgesEarned,omitempty"`
	Status        string   `json:"status"`
	Message       string   `json:"message,omitempty"`
	DurationMs    int64    `json:"durationMs"`
}

type resolutionResultDTO struct {
	Date          string              `json:"date"`
	PendingPicks  int                 `json:"pendingPicks"`
	UserCount     int                 `json:"userCount"`
	WorkerCount   int                 `json:"workerCount"`
	ResolvedCount int                 `json:"resolvedCount"`
	SkippedCount  int                 `json:"skippedCount"`
	FailedCount   int                 `json:"failedCount"`
	Tasks         []resolutionTaskDTO `json:"tasks"`
}

func (h *Handler) RunResolvePicksJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResolvePicksJob")
	defer span.End()

	req, err := decodeResolvePicksJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	result, err := h.resolutionService.ResolveDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve picks job failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	if req.ScheduleNext {
		// Scheduling is best effort: a finished run is reported even when
		// the next link in the chain could not be enqueued.
		if err := h.resolutionService.ScheduleNext(ctx, date, defaultResolveChainDelay); err != nil {
			h.logger.WarnContext(ctx, "schedule next resolution failed", "date", date, "error", err)
		}
	}

	writeSuccess(ctx, w, http.StatusOK, resolutionResultToDTO(ctx, result))
}

func decodeResolvePicksJobRequest(r *http.Request) (resolvePicksJobRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req resolvePicksJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return resolvePicksJobRequest{}, nil
		}
		return resolvePicksJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func resolutionResultToDTO(ctx context.Context, result usecase.ResolutionResult) resolutionResultDTO {
	ctx, span := startSpan(ctx, "httpapi.resolutionResultToDTO")
	defer span.End()

	tasks := make([]resolutionTaskDTO, 0, len(result.Tasks))
	for _, task := range result.Tasks {
		tasks = append(tasks, resolutionTaskDTO{
			Username:      task.Username,
			ResolvedPicks: task.ResolvedPicks,
			PointsAwarded: task.PointsAwarded,
			BadgesEarned:  task.BadgesEarned,
			Status:        task.Status,
			Message:       task.Message,
			DurationMs:    task.DurationMs,
		})
	}

	return resolutionResultDTO{
		Date:          result.Date,
		PendingPicks:  result.PendingPicks,
		UserCount:     result.UserCount,
		WorkerCount:   result.WorkerCount,
		ResolvedCount: result.ResolvedCount,
		SkippedCount:  result.SkippedCount,
		FailedCount:   result.FailedCount,
		Tasks:         tasks,
	}
}
