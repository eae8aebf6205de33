package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/feed"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/news"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/platform/cache"
	"github.com/pickrush/pickrush/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	feedPageDays         = 5
	feedMaxLookbackDays  = 50
	newsArticlesPerSport = 5
	performanceMaxPosts  = 20
)

// GamesProvider supplies game snapshots from the sports-data service.
type GamesProvider interface {
	GamesByDate(ctx context.Context, date string) ([]game.Game, error)
	GameByID(ctx context.Context, id string) (game.Game, bool, error)
}

// BoxScoreProvider supplies per-game stat summaries for finished games.
type BoxScoreProvider interface {
	Summary(ctx context.Context, gameID string) (boxscore.BoxScore, error)
}

// NewsProvider supplies recent articles for one sport.
type NewsProvider interface {
	ArticlesBySport(ctx context.Context, sport game.Sport, limit int) ([]news.Article, error)
}

type FeedService struct {
	games     GamesProvider
	boxScores BoxScoreProvider
	news      NewsProvider
	pickRepo  pick.Repository
	cache     *cache.Store
	logger    *logging.Logger
	now       func() time.Time
}

func NewFeedService(
	games GamesProvider,
	boxScores BoxScoreProvider,
	newsProvider NewsProvider,
	pickRepo pick.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if store == nil {
		store = cache.NewStore(0)
	}
	return &FeedService{
		games:     games,
		boxScores: boxScores,
		news:      newsProvider,
		pickRepo:  pickRepo,
		cache:     store,
		logger:    logger,
		now:       time.Now,
	}
}

type feedDay struct {
	offset int
	date   string
	games  []game.Game
	picks  []pick.Pick
}

// BuildPage assembles one feed page for the given day offset (0 = today).
// Each page spans five calendar days up to a fifty day lookback. Trending,
// hot picks, and news are built only for the first page; the window-scoped
// builders run on every page. A failing upstream fetch empties only that
// builder's contribution, it never fails the page.
func (s *FeedService) BuildPage(ctx context.Context, dayOffset int) (feed.Page, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.BuildPage")
	defer span.End()

	if dayOffset < 0 {
		return feed.Page{}, fmt.Errorf("%w: day offset must be >= 0", ErrInvalidInput)
	}
	if dayOffset >= feedMaxLookbackDays {
		return feed.Page{Posts: []feed.Post{}}, nil
	}

	windowEnd := dayOffset + feedPageDays - 1
	if windowEnd > feedMaxLookbackDays-1 {
		windowEnd = feedMaxLookbackDays - 1
	}

	now := s.now()
	days := s.fetchWindow(ctx, now, dayOffset, windowEnd)

	var windowGames []game.Game
	picksByGame := make(map[string][]pick.Pick)
	for _, day := range days {
		windowGames = append(windowGames, day.games...)
		for _, p := range day.picks {
			picksByGame[p.GameID] = append(picksByGame[p.GameID], p)
		}
	}

	var posts []feed.Post
	if dayOffset == 0 && len(days) > 0 {
		today := days[0]
		if post, ok := buildTrendingPick(today.picks, today.games, today.date, now); ok {
			posts = append(posts, post)
		}
		if post, ok := buildHotPicks(today.picks, today.games, today.date, now); ok {
			posts = append(posts, post)
		}
		posts = append(posts, buildNewsPosts(s.fetchNews(ctx))...)
	}

	posts = append(posts, buildBigGamePosts(windowGames, now)...)
	posts = append(posts, s.buildPlayerPerformances(ctx, windowGames, performanceMaxPosts)...)
	posts = append(posts, buildGameResultPosts(windowGames, picksByGame)...)

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	return feed.Page{
		Posts:   posts,
		HasMore: windowEnd < feedMaxLookbackDays-1,
	}, nil
}

// fetchWindow loads games and picks for each day of the window
// concurrently. A day whose fetch fails contributes empty slices.
func (s *FeedService) fetchWindow(ctx context.Context, now time.Time, first, last int) []feedDay {
	p := pool.NewWithResults[feedDay]().WithContext(ctx)
	for offset := first; offset <= last; offset++ {
		offset := offset
		date := now.AddDate(0, 0, -offset).Format("2006-01-02")
		p.Go(func(ctx context.Context) (feedDay, error) {
			day := feedDay{offset: offset, date: date}

			games, err := s.games.GamesByDate(ctx, date)
			if err != nil {
				s.logger.WarnContext(ctx, "feed day games fetch failed", "date", date, "error", err)
			} else {
				day.games = games
			}

			picks, err := s.pickRepo.ListByDate(ctx, date)
			if err != nil {
				s.logger.WarnContext(ctx, "feed day picks fetch failed", "date", date, "error", err)
			} else {
				day.picks = picks
			}

			return day, nil
		})
	}

	days, err := p.Wait()
	if err != nil {
		s.logger.WarnContext(ctx, "feed window fetch incomplete", "error", err)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].offset < days[j].offset })
	return days
}

// fetchNews pulls articles for every sport concurrently; a failing sport
// contributes nothing.
func (s *FeedService) fetchNews(ctx context.Context) []news.Article {
	if s.news == nil {
		return nil
	}

	p := pool.NewWithResults[[]news.Article]().WithContext(ctx)
	for _, sport := range game.Sports {
		sport := sport
		p.Go(func(ctx context.Context) ([]news.Article, error) {
			articles, err := s.news.ArticlesBySport(ctx, sport, newsArticlesPerSport)
			if err != nil {
				s.logger.WarnContext(ctx, "feed news fetch failed", "sport", sport, "error", err)
				return nil, nil
			}
			if len(articles) > newsArticlesPerSport {
				articles = articles[:newsArticlesPerSport]
			}
			return articles, nil
		})
	}

	batches, err := p.Wait()
	if err != nil {
		s.logger.WarnContext(ctx, "feed news fetch incomplete", "error", err)
	}

	var articles []news.Article
	for _, batch := range batches {
		articles = append(articles, batch...)
	}
	return articles
}

// buildPlayerPerformances scans finished games for standout stat lines.
// Box-score summaries are memoized per game so repeated pages within the
// cache TTL skip the upstream call. Posts are capped across the whole
// window, processing games in window order and stopping at the cap.
func (s *FeedService) buildPlayerPerformances(ctx context.Context, games []game.Game, maxPosts int) []feed.Post {
	if s.boxScores == nil || maxPosts <= 0 {
		return nil
	}

	var posts []feed.Post
	for _, g := range games {
		if len(posts) >= maxPosts {
			break
		}
		if !g.IsFinal() {
			continue
		}

		summary, err := s.loadBoxScore(ctx, g.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "box score fetch failed", "game_id", g.ID, "error", err)
			continue
		}

		posts = appendStandoutPosts(posts, g, summary, maxPosts)
	}

	return posts
}

func (s *FeedService) loadBoxScore(ctx context.Context, gameID string) (boxscore.BoxScore, error) {
	value, err := s.cache.GetOrLoad(ctx, "boxscore:"+gameID, func(ctx context.Context) (any, error) {
		return s.boxScores.Summary(ctx, gameID)
	})
	if err != nil {
		return boxscore.BoxScore{}, err
	}

	summary, ok := value.(boxscore.BoxScore)
	if !ok {
		return boxscore.BoxScore{}, fmt.Errorf("unexpected cached box score type %T", value)
	}
	return summary, nil
}
