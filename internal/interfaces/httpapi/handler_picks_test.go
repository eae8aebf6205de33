package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/team"
	"github.com/pickrush/pickrush/internal/domain/user"
	"github.com/pickrush/pickrush/internal/infrastructure/repository/memory"
	"github.com/pickrush/pickrush/internal/platform/logging"
	"github.com/pickrush/pickrush/internal/usecase"
)

type stubGamesProvider struct {
	games []game.Game
}

var _ usecase.GamesProvider = (*stubGamesProvider)(nil)

func (s *stubGamesProvider) GamesByDate(_ context.Context, date string) ([]game.Game, error) {
	var out []game.Game
	for _, g := range s.games {
		if g.Date == date {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *stubGamesProvider) GameByID(_ context.Context, id string) (game.Game, bool, error) {
	for _, g := range s.games {
		if g.ID == id {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

type stubVerifier struct{}

func (stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token != "good-token" {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: "u-alice", Username: "alice"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	today := time.Now().UTC().Format("2006-01-02")
	games := &stubGamesProvider{games: []game.Game{
		{
			ID:    "basketball-1",
			Sport: game.SportBasketball,
			Date:  today,
			HomeTeam: team.Team{
				ID: "t1", Name: "Lakers", Abbreviation: "LAL", Record: "40-20",
			},
			AwayTeam: team.Team{
				ID: "t2", Name: "Celtics", Abbreviation: "BOS", Record: "45-15",
			},
			Status:    game.StatusScheduled,
			StartTime: time.Now().Add(2 * time.Hour),
		},
	}}

	pickRepo := memory.NewPickRepository()
	userRepo := memory.NewUserRepository()
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewFeedService(games, nil, nil, pickRepo, nil, logger),
		usecase.NewPicksService(games, pickRepo, userRepo, logger),
		usecase.NewLeaderboardService(userRepo),
		usecase.NewBadgeService(userRepo),
		usecase.NewStatLeadersService(games, nil, nil, logger),
		usecase.NewResolutionService(games, pickRepo, userRepo, nil, logger, 2),
		logger,
	)

	return NewRouter(handler, stubVerifier{}, logger, false, nil, "job-token")
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var envelope map[string]any
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope
}

func TestRouter_SubmitPick(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(`{"game_id":"basketball-1","team_id":"t1"}`))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec.Body.Bytes())["data"].(map[string]any)
	if data["id"] != "alice-basketball-1" || data["result"] != "pending" {
		t.Fatalf("unexpected pick payload: %v", data)
	}
}

func TestRouter_SubmitPickRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(`{"game_id":"basketball-1","team_id":"t1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRouter_ListMyPicksAfterSubmit(t *testing.T) {
	router := newTestRouter(t)

	submit := httptest.NewRequest(http.MethodPost, "/v1/picks", strings.NewReader(`{"game_id":"basketball-1","team_id":"t2"}`))
	submit.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodGet, "/v1/picks", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec.Body.Bytes())["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("picks = %d, want 1", len(data))
	}
}

func TestRouter_ListGamesRejectsBadDate(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games?date=tomorrow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouter_LeaderboardIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?period=weekly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec.Body.Bytes())["data"].(map[string]any)
	if data["period"] != "weekly" {
		t.Fatalf("unexpected leaderboard payload: %v", data)
	}
}

func TestRouter_ResolveJobRequiresInternalToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/resolve-picks", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/resolve-picks", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with token = %d, body = %s", rec.Code, rec.Body.String())
	}
}
