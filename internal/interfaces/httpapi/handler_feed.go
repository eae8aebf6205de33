package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pickrush/pickrush/internal/domain/feed"
	"github.com/pickrush/pickrush/internal/domain/news"
	"github.com/pickrush/pickrush/internal/usecase"
)

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFeed")
	defer span.End()

	offset := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid offset %q", usecase.ErrInvalidInput, raw))
			return
		}
		offset = parsed
	}

	page, err := h.feedService.BuildPage(ctx, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "build feed page failed", "offset", offset, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feedPageToDTO(ctx, page))
}

type feedPageDTO struct {
	Posts   []feedPostDTO `json:"posts"`
	HasMore bool          `json:"hasMore"`
}

type feedPostDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Sport     string `json:"sport,omitempty"`

	Trending    *trendingPickDTO      `json:"trendingPick,omitempty"`
	HotPicks    *hotPicksDTO          `json:"hotPicks,omitempty"`
	BigGame     *bigGameDTO           `json:"bigGame,omitempty"`
	Performance *playerPerformanceDTO `json:"playerPerformance,omitempty"`
	GameResult  *gameResultDTO        `json:"gameResult,omitempty"`
	News        *newsArticleDTO       `json:"news,omitempty"`
}

type trendingPickDTO struct {
	TeamID            string `json:"teamId"`
	TeamName          string `json:"teamName"`
	TeamAbbreviation  string `json:"teamAbbreviation,omitempty"`
	TeamLogoURL       string `json:"teamLogoUrl,omitempty"`
	GameID            string `json:"gameId"`
	OpponentName      string `json:"opponentName"`
	PickCount         int    `json:"pickCount"`
	TotalPicksForGame int    `json:"totalPicksForGame"`
}

type hotPickEntryDTO struct {
	Username         string `json:"username"`
	GameID           string `json:"gameId"`
	TeamName         string `json:"teamName"`
	TeamAbbreviation string `json:"teamAbbreviation,omitempty"`
	OpponentName     string `json:"opponentName"`
}

type hotPicksDTO struct {
	Headline string            `json:"headline"`
	Entries  []hotPickEntryDTO `json:"entries"`
}

type bigGameDTO struct {
	Game      gameDTO `json:"game"`
	Headline  string  `json:"headline"`
	HypeScore int     `json:"hypeScore"`
}

type playerPerformanceDTO struct {
	GameID           string             `json:"gameId"`
	AthleteID        string             `json:"athleteId"`
	AthleteName      string             `json:"athleteName"`
	TeamID           string             `json:"teamId,omitempty"`
	TeamName         string             `json:"teamName,omitempty"`
	TeamAbbreviation string             `json:"teamAbbreviation,omitempty"`
	Headline         string             `json:"headline"`
	Stats            map[string]float64 `json:"stats,omitempty"`
	Won              bool               `json:"won"`
}

type gameResultPickDTO struct {
	Username     string `json:"username"`
	PickedTeamID string `json:"pickedTeamId"`
	Correct      bool   `json:"correct"`
}

type gameResultDTO struct {
	Game           gameDTO             `json:"game"`
	WinnerTeamID   string              `json:"winnerTeamId,omitempty"`
	Picks          []gameResultPickDTO `json:"picks"`
	CorrectPickers int                 `json:"correctPickers"`
	TotalPickers   int                 `json:"totalPickers"`
}

type newsArticleDTO struct {
	Headline          string   `json:"headline"`
	Description       string   `json:"description,omitempty"`
	Published         string   `json:"published,omitempty"`
	Link              string   `json:"link,omitempty"`
	ImageURL          string   `json:"imageUrl,omitempty"`
	TeamAbbreviations []string `json:"teamAbbreviations,omitempty"`
}

func feedPageToDTO(ctx context.Context, page feed.Page) feedPageDTO {
	ctx, span := startSpan(ctx, "httpapi.feedPageToDTO")
	defer span.End()

	posts := make([]feedPostDTO, 0, len(page.Posts))
	for _, post := range page.Posts {
		posts = append(posts, feedPostToDTO(ctx, post))
	}

	return feedPageDTO{Posts: posts, HasMore: page.HasMore}
}

func feedPostToDTO(ctx context.Context, post feed.Post) feedPostDTO {
	dto := feedPostDTO{
		ID:        post.ID,
		Type:      string(post.Type),
		Timestamp: post.Timestamp.UTC().Format(time.RFC3339),
		Sport:     string(post.Sport),
	}

	if post.Trending != nil {
		dto.Trending = &trendingPickDTO{
			TeamID:            post.Trending.TeamID,
			TeamName:          post.Trending.TeamName,
			TeamAbbreviation:  post.Trending.TeamAbbreviation,
			TeamLogoURL:       post.Trending.TeamLogoURL,
			GameID:            post.Trending.GameID,
			OpponentName:      post.Trending.OpponentName,
			PickCount:         post.Trending.PickCount,
			TotalPicksForGame: post.Trending.TotalPicksForGame,
		}
	}
	if post.HotPicks != nil {
		entries := make([]hotPickEntryDTO, 0, len(post.HotPicks.Entries))
		for _, entry := range post.HotPicks.Entries {
			entries = append(entries, hotPickEntryDTO{
				Username:         entry.Username,
				GameID:           entry.GameID,
				TeamName:         entry.TeamName,
				TeamAbbreviation: entry.TeamAbbreviation,
				OpponentName:     entry.OpponentName,
			})
		}
		dto.HotPicks = &hotPicksDTO{Headline: post.HotPicks.Headline, Entries: entries}
	}
	if post.BigGame != nil {
		dto.BigGame = &bigGameDTO{
			Game:      gameToDTO(ctx, post.BigGame.Game),
			Headline:  post.BigGame.Headline,
			HypeScore: post.BigGame.HypeScore,
		}
	}
	if post.Performance != nil {
		dto.Performance = &playerPerformanceDTO{
			GameID:           post.Performance.GameID,
			AthleteID:        post.Performance.AthleteID,
			AthleteName:      post.Performance.AthleteName,
			TeamID:           post.Performance.TeamID,
			TeamName:         post.Performance.TeamName,
			TeamAbbreviation: post.Performance.TeamAbbreviation,
			Headline:         post.Performance.Headline,
			Stats:            post.Performance.Stats,
			Won:              post.Performance.Won,
		}
	}
	if post.GameResult != nil {
		picks := make([]gameResultPickDTO, 0, len(post.GameResult.Entries))
		for _, entry := range post.GameResult.Entries {
			picks = append(picks, gameResultPickDTO{
				Username:     entry.Username,
				PickedTeamID: entry.PickedTeamID,
				Correct:      entry.Correct,
			})
		}
		dto.GameResult = &gameResultDTO{
			Game:           gameToDTO(ctx, post.GameResult.Game),
			WinnerTeamID:   post.GameResult.WinnerTeamID,
			Picks:          picks,
			CorrectPickers: post.GameResult.CorrectPickers,
			TotalPickers:   post.GameResult.TotalPickers,
		}
	}
	if post.News != nil {
		dto.News = newsToDTO(*post.News)
	}

	return dto
}

func newsToDTO(article news.Article) *newsArticleDTO {
	return &newsArticleDTO{
		Headline:          article.Headline,
		Description:       article.Description,
		Published:         formatOptionalTime(article.Published),
		Link:              article.Link,
		ImageURL:          article.ImageURL,
		TeamAbbreviations: article.TeamAbbreviations,
	}
}
