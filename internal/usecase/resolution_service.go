package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pickrush/pickrush/internal/domain/badge"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/scoring"
	"github.com/pickrush/pickrush/internal/domain/user"
	"github.com/pickrush/pickrush/internal/platform/logging"
)

const (
	resolutionStatusResolved = "resolved"
	resolutionStatusSkipped  = "skipped"
	resolutionStatusFailed   = "failed"

	defaultResolutionWorkers = 8
)

// JobPublisher enqueues internal job callbacks on the job queue.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// ResolutionTaskResult reports the outcome for one user's pending picks.
type ResolutionTaskResult struct {
	Username      string
	ResolvedPicks int
	PointsAwarded int
	BadgesEarned  []string
	Status        string
	Message       string
	DurationMs    int64
}

// ResolutionResult summarizes one resolution pass over a date.
type ResolutionResult struct {
	Date          string
	PendingPicks  int
	UserCount     int
	WorkerCount   int
	ResolvedCount int
	SkippedCount  int
	FailedCount   int
	Tasks         []ResolutionTaskResult
}

// ResolutionService settles pending picks once games go final. Resolution
// is idempotent per pick: a pick's result and points are written once and
// already-resolved picks are never touched again.
type ResolutionService struct {
	games    GamesProvider
	pickRepo pick.Repository
	userRepo user.Repository
	jobs     JobPublisher
	logger   *logging.Logger
	workers  int
	now      func() time.Time
}

func NewResolutionService(
	games GamesProvider,
	pickRepo pick.Repository,
	userRepo user.Repository,
	jobs JobPublisher,
	logger *logging.Logger,
	workers int,
) *ResolutionService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultResolutionWorkers
	}
	return &ResolutionService{
		games:    games,
		pickRepo: pickRepo,
		userRepo: userRepo,
		jobs:     jobs,
		logger:   logger,
		workers:  workers,
		now:      time.Now,
	}
}

// ResolveDate settles every pending pick for the date, fanning out per
// user: each user's picks resolve in submission order so streak bonuses
// see the right running streak, then the aggregate transition and badge
// evaluation run on the updated totals.
func (s *ResolutionService) ResolveDate(ctx context.Context, date string) (ResolutionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.ResolveDate")
	defer span.End()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ResolutionResult{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}

	pending, err := s.pickRepo.ListPendingByDate(ctx, date)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("list pending picks: %w", err)
	}

	games, err := s.games.GamesByDate(ctx, date)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("%w: fetch games for %s: %v", ErrDependencyUnavailable, date, err)
	}
	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	byUser := make(map[string][]pick.Pick)
	var usernames []string
	for _, p := range pending {
		if _, seen := byUser[p.Username]; !seen {
			usernames = append(usernames, p.Username)
		}
		byUser[p.Username] = append(byUser[p.Username], p)
	}

	workerCount := s.workers
	if len(usernames) < workerCount {
		workerCount = len(usernames)
	}

	result := ResolutionResult{
		Date:         date,
		PendingPicks: len(pending),
		UserCount:    len(usernames),
		WorkerCount:  workerCount,
		Tasks:        make([]ResolutionTaskResult, 0, len(usernames)),
	}
	if len(usernames) == 0 {
		return result, nil
	}

	results := make(chan ResolutionTaskResult, len(usernames))

	var resolvedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, username := range usernames {
		username := username
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.resolveUser(ctx, username, date, byUser[username], gamesByID)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case resolutionStatusResolved:
				resolvedCount.Add(1)
			case resolutionStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return ResolutionResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Username < result.Tasks[j].Username
	})

	result.ResolvedCount = int(resolvedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *ResolutionService) resolveUser(
	ctx context.Context,
	username string,
	date string,
	userPicks []pick.Pick,
	gamesByID map[string]game.Game,
) ResolutionTaskResult {
	row := ResolutionTaskResult{Username: username, Status: resolutionStatusSkipped}

	aggregate, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		row.Status = resolutionStatusFailed
		row.Message = fmt.Sprintf("load user: %v", err)
		return row
	}
	if !exists {
		aggregate = user.User{Username: username, CreatedAt: s.now()}
	}

	sort.SliceStable(userPicks, func(i, j int) bool {
		return userPicks[i].SubmittedAt.Before(userPicks[j].SubmittedAt)
	})

	streak := aggregate.CurrentStreak
	var resolved []pick.Pick
	points := 0

	for _, p := range userPicks {
		if p.IsResolved() {
			continue
		}
		g, ok := gamesByID[p.GameID]
		if !ok || !g.IsFinal() {
			continue
		}
		winnerID, ok := game.WinnerID(g)
		if ok && p.PickedTeamID == winnerID {
			breakdown := scoring.PickPoints(p, g, streak)
			p.Result = pick.ResultCorrect
			p.PointsEarned = breakdown.Total
			streak++
			points += breakdown.Total
		} else {
			// Wrong team, or a tied final with no winner.
			p.Result = pick.ResultIncorrect
			p.PointsEarned = 0
			streak = 0
		}

		if err := s.pickRepo.MarkResolved(ctx, p.ID, p.Result, p.PointsEarned); err != nil {
			row.Status = resolutionStatusFailed
			row.Message = fmt.Sprintf("mark pick %s resolved: %v", p.ID, err)
			return row
		}
		resolved = append(resolved, p)
	}

	if len(resolved) == 0 {
		return row
	}

	now := s.now()
	aggregate = aggregate.RolledToWeek(user.WeekOf(now))
	aggregate = user.ApplyResolution(aggregate, resolved)

	earned, err := s.evaluateBadges(ctx, aggregate, date, gamesByID, now)
	if err != nil {
		s.logger.WarnContext(ctx, "badge evaluation failed", "username", username, "error", err)
	}
	for _, b := range earned {
		aggregate.Badges = append(aggregate.Badges, user.EarnedBadge{ID: b.ID, EarnedAt: b.EarnedAt})
		row.BadgesEarned = append(row.BadgesEarned, b.ID)
	}

	if err := s.userRepo.Save(ctx, aggregate); err != nil {
		row.Status = resolutionStatusFailed
		row.Message = fmt.Sprintf("save user: %v", err)
		return row
	}

	row.Status = resolutionStatusResolved
	row.ResolvedPicks = len(resolved)
	row.PointsAwarded = points
	return row
}

func (s *ResolutionService) evaluateBadges(
	ctx context.Context,
	aggregate user.User,
	date string,
	gamesByID map[string]game.Game,
	now time.Time,
) ([]badge.Badge, error) {
	allPicks, err := s.pickRepo.ListByUser(ctx, aggregate.Username)
	if err != nil {
		return nil, fmt.Errorf("list pick history: %w", err)
	}

	var todayPicks []pick.Pick
	for _, p := range allPicks {
		if p.Date == date {
			todayPicks = append(todayPicks, p)
		}
	}
	todayGames := make([]game.Game, 0, len(gamesByID))
	for _, g := range gamesByID {
		todayGames = append(todayGames, g)
	}

	return badge.EvaluateNew(aggregate, todayPicks, todayGames, allPicks, now), nil
}

// ScheduleNext enqueues the next day's resolution callback, deduplicated
// by date so repeated schedule calls collapse into one job.
func (s *ResolutionService) ScheduleNext(ctx context.Context, after string, delay time.Duration) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.ScheduleNext")
	defer span.End()

	if s.jobs == nil {
		return fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
	}
	day, err := time.Parse("2006-01-02", after)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, after)
	}

	next := day.AddDate(0, 0, 1).Format("2006-01-02")
	payload := map[string]string{"date": next}
	if err := s.jobs.Enqueue(ctx, "/internal/jobs/resolve-picks", payload, delay, "resolve-"+next); err != nil {
		return fmt.Errorf("enqueue resolution job: %w", err)
	}
	return nil
}
