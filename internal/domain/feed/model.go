package feed

import (
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/news"
)

// PostType enumerates the six feed post sources.
type PostType string

const (
	TypeTrendingPick      PostType = "trending_pick"
	TypeHotPicks          PostType = "hot_picks"
	TypeBigGame           PostType = "big_game"
	TypePlayerPerformance PostType = "player_performance"
	TypeGameResult        PostType = "game_result"
	TypeNews              PostType = "news"
)

// Post is one derived feed entry. Posts are ephemeral: ids are stable across
// rebuilds of the same window, and the timestamp exists purely for sort
// order. Builders assign adjusted recency estimates rather than true event
// times so different post types interleave sensibly.
type Post struct {
	ID        string
	Type      PostType
	Timestamp time.Time
	Sport     game.Sport

	Trending    *TrendingPickData
	HotPicks    *HotPicksData
	BigGame     *BigGameData
	Performance *PlayerPerformanceData
	GameResult  *GameResultData
	News        *news.Article
}

// TrendingPickData names the single most-picked team of the day.
type TrendingPickData struct {
	TeamID            string
	TeamName          string
	TeamAbbreviation  string
	TeamLogoURL       string
	GameID            string
	OpponentName      string
	PickCount         int
	TotalPicksForGame int
}

// HotPickEntry is one user's featured pick inside a hot-picks post.
type HotPickEntry struct {
	Username         string
	GameID           string
	TeamName         string
	TeamAbbreviation string
	OpponentName     string
}

// HotPicksData showcases up to five users' picks for the day.
type HotPicksData struct {
	Headline string
	Entries  []HotPickEntry
}

// BigGameData flags a marquee matchup with its hype score and headline.
type BigGameData struct {
	Game      game.Game
	Headline  string
	HypeScore int
}

// PlayerPerformanceData highlights one standout stat line.
type PlayerPerformanceData struct {
	GameID           string
	AthleteID        string
	AthleteName      string
	TeamID           string
	TeamName         string
	TeamAbbreviation string
	Headline         string
	Stats            map[string]float64
	Won              bool
}

// GameResultPickEntry is one user's call shown under a final score.
type GameResultPickEntry struct {
	Username     string
	PickedTeamID string
	Correct      bool
}

// GameResultData reports a final score with how the pickers fared.
type GameResultData struct {
	Game           game.Game
	WinnerTeamID   string
	Entries        []GameResultPickEntry
	CorrectPickers int
	TotalPickers   int
}

// Page is one assembled slice of the feed.
type Page struct {
	Posts   []Post
	HasMore bool
}
