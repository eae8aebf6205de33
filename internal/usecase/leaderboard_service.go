package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pickrush/pickrush/internal/domain/user"
)

const (
	LeaderboardPeriodWeekly  = "weekly"
	LeaderboardPeriodAllTime = "alltime"

	leaderboardMaxEntries = 100
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int
	Username    string
	DisplayName string
	Points      int
	Correct     int
	Total       int
	AccuracyPct int
	Streak      int
}

// Leaderboard is a ranked page plus the caller's own rank when they fall
// outside the visible entries.
type Leaderboard struct {
	Period  string
	Week    int
	Entries []LeaderboardEntry
	MyRank  int
}

type LeaderboardService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewLeaderboardService(userRepo user.Repository) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Get ranks every user by weekly or all-time points. Weekly points from a
// previous week read as zero without waiting for the stored aggregates to
// roll over. Users tied on points share a rank and the next distinct
// score skips past them.
func (s *LeaderboardService) Get(ctx context.Context, period, username string) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Get")
	defer span.End()

	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		period = LeaderboardPeriodWeekly
	}
	if period != LeaderboardPeriodWeekly && period != LeaderboardPeriodAllTime {
		return Leaderboard{}, fmt.Errorf("%w: unknown leaderboard period %q", ErrInvalidInput, period)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list users: %w", err)
	}

	week := user.WeekOf(s.now())
	points := func(u user.User) int {
		if period == LeaderboardPeriodAllTime {
			return u.TotalPoints
		}
		if u.WeekNumber != week {
			return 0
		}
		return u.WeeklyPoints
	}

	sort.SliceStable(users, func(i, j int) bool {
		return points(users[i]) > points(users[j])
	})

	board := Leaderboard{Period: period, Week: week}
	rank := 0
	lastPoints := 0
	for i, u := range users {
		p := points(u)
		if i == 0 || p != lastPoints {
			rank = i + 1
			lastPoints = p
		}

		if u.Username == username {
			board.MyRank = rank
		}
		if len(board.Entries) >= leaderboardMaxEntries {
			if board.MyRank != 0 {
				break
			}
			continue
		}

		board.Entries = append(board.Entries, LeaderboardEntry{
			Rank:        rank,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Points:      p,
			Correct:     u.CorrectPicks,
			Total:       u.TotalPicks,
			AccuracyPct: u.AccuracyPct(),
			Streak:      u.CurrentStreak,
		})
	}

	return board, nil
}
