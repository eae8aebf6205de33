package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/feed"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/news"
	"github.com/pickrush/pickrush/internal/domain/performance"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/team"
)

const (
	hotPicksMaxUsers     = 5
	bigGameMinHype       = 2
	bigGameMaxPosts      = 10
	gameResultMaxEntries = 5
)

// Builder timestamps are adjusted recency estimates, not event times: the
// today-only posts get near-now stamps (hot picks just behind trending) so
// they surface at the top, while game-anchored posts sit at offsets around
// the game's start so they interleave with older content.
const (
	hotPicksTimestampLag = 30 * time.Second
	bigGameTimestampLag  = 60 * time.Second
	gameResultDelay      = 3 * time.Hour
)

// buildTrendingPick tallies pick counts per team-and-game and emits one
// post for the top team. Ties keep the first team encountered in pick
// order; that stable first-wins behavior is deliberate, not an accident of
// map iteration.
func buildTrendingPick(picks []pick.Pick, games []game.Game, date string, now time.Time) (feed.Post, bool) {
	if len(picks) == 0 {
		return feed.Post{}, false
	}

	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	type tally struct {
		teamID string
		gameID string
		count  int
	}
	var order []string
	counts := make(map[string]*tally, len(picks))
	gameCounts := make(map[string]int, len(games))

	for _, p := range picks {
		key := p.PickedTeamID + "|" + p.GameID
		if existing, ok := counts[key]; ok {
			existing.count++
		} else {
			counts[key] = &tally{teamID: p.PickedTeamID, gameID: p.GameID, count: 1}
			order = append(order, key)
		}
		gameCounts[p.GameID]++
	}

	var top *tally
	for _, key := range order {
		candidate := counts[key]
		if top == nil || candidate.count > top.count {
			top = candidate
		}
	}

	g, ok := gamesByID[top.gameID]
	if !ok {
		return feed.Post{}, false
	}
	picked, ok := g.Team(top.teamID)
	if !ok {
		return feed.Post{}, false
	}
	opponent, _ := g.Opponent(top.teamID)

	return feed.Post{
		ID:        "trending-" + date,
		Type:      feed.TypeTrendingPick,
		Timestamp: now,
		Sport:     g.Sport,
		Trending: &feed.TrendingPickData{
			TeamID:            picked.ID,
			TeamName:          picked.DisplayName,
			TeamAbbreviation:  picked.Abbreviation,
			TeamLogoURL:       picked.LogoURL,
			GameID:            g.ID,
			OpponentName:      opponent.DisplayName,
			PickCount:         top.count,
			TotalPicksForGame: gameCounts[top.gameID],
		},
	}, true
}

// buildHotPicks walks the day's picks in order, keeps the first pick per
// distinct user up to five users, and skips picks whose game is unknown.
func buildHotPicks(picks []pick.Pick, games []game.Game, date string, now time.Time) (feed.Post, bool) {
	if len(picks) == 0 {
		return feed.Post{}, false
	}

	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	seen := make(map[string]struct{}, hotPicksMaxUsers)
	var entries []feed.HotPickEntry
	var sport game.Sport

	for _, p := range picks {
		if len(entries) >= hotPicksMaxUsers {
			break
		}
		if _, dup := seen[p.Username]; dup {
			continue
		}
		g, ok := gamesByID[p.GameID]
		if !ok {
			continue
		}
		picked, ok := g.Team(p.PickedTeamID)
		if !ok {
			continue
		}
		opponent, _ := g.Opponent(p.PickedTeamID)

		seen[p.Username] = struct{}{}
		sport = g.Sport
		entries = append(entries, feed.HotPickEntry{
			Username:         p.Username,
			GameID:           g.ID,
			TeamName:         picked.DisplayName,
			TeamAbbreviation: picked.Abbreviation,
			OpponentName:     opponent.DisplayName,
		})
	}

	if len(entries) == 0 {
		return feed.Post{}, false
	}

	headline := fmt.Sprintf("%s is locked in today", entries[0].Username)
	if len(entries) > 1 {
		headline = fmt.Sprintf("%d picks are in. See who's riding who", len(entries))
	}

	return feed.Post{
		ID:        "hotpicks-" + date,
		Type:      feed.TypeHotPicks,
		Timestamp: now.Add(-hotPicksTimestampLag),
		Sport:     sport,
		HotPicks: &feed.HotPicksData{
			Headline: headline,
			Entries:  entries,
		},
	}, true
}

// scoreBigGame rates how watchable a matchup is. Additive from zero, with
// two hard vetoes: a record gap above 0.25 and a blowout margin of 20+.
func scoreBigGame(g game.Game) int {
	home := team.ParseRecord(g.HomeTeam.Record)
	away := team.ParseRecord(g.AwayTeam.Record)
	homePct := home.WinPct()
	awayPct := away.WinPct()

	gap := homePct - awayPct
	if gap < 0 {
		gap = -gap
	}
	if gap > 0.25 {
		return 0
	}

	score := 0
	if gap > 0.15 {
		score--
	}
	if home.Winning() && away.Winning() {
		score += 2
	}

	if margin, ok := g.Margin(); ok {
		if margin >= 20 {
			return 0
		}
		switch {
		case margin <= 5:
			score += 3
		case margin <= 10:
			score++
		}
		if margin >= 15 {
			score -= 2
		}
	}

	if home.Wins+away.Wins > 60 {
		score++
	}

	// Pre-tip bonuses stack: an elite matchup can also be dead even.
	if g.Status == game.StatusScheduled {
		if homePct > 0.6 && awayPct > 0.6 {
			score += 2
		}
		if gap < 0.05 && homePct > 0.5 && awayPct > 0.5 {
			score++
		}
	}

	return score
}

// bigGameHeadline picks the first matching label; rule order matters.
func bigGameHeadline(g game.Game) string {
	home := team.ParseRecord(g.HomeTeam.Record)
	away := team.ParseRecord(g.AwayTeam.Record)
	homePct := home.WinPct()
	awayPct := away.WinPct()
	gap := homePct - awayPct
	if gap < 0 {
		gap = -gap
	}

	margin, hasMargin := g.Margin()
	switch {
	case hasMargin && margin <= 3 && g.IsFinal():
		return "Nail-Biter Finish"
	case hasMargin && margin <= 5 && g.IsLive():
		return "Close Game Alert"
	case hasMargin && margin <= 8 && g.IsFinal():
		return "Down-to-the-Wire"
	case homePct > 0.65 && awayPct > 0.65:
		return "Elite Matchup"
	case gap < 0.05 && homePct > 0.5:
		return "Dead-Even Clash"
	case home.Winning() && away.Winning():
		return "Playoff-Caliber Clash"
	default:
		return "Must-Watch Game"
	}
}

// buildBigGamePosts keeps games rated at least 2, sorted by hype score
// descending, capped at ten posts.
func buildBigGamePosts(games []game.Game, now time.Time) []feed.Post {
	type rated struct {
		game game.Game
		hype int
	}
	var kept []rated
	for _, g := range games {
		if hype := scoreBigGame(g); hype >= bigGameMinHype {
			kept = append(kept, rated{game: g, hype: hype})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].hype > kept[j].hype })
	if len(kept) > bigGameMaxPosts {
		kept = kept[:bigGameMaxPosts]
	}

	posts := make([]feed.Post, 0, len(kept))
	for _, r := range kept {
		posts = append(posts, feed.Post{
			ID:        "biggame-" + r.game.ID,
			Type:      feed.TypeBigGame,
			Timestamp: now.Add(-bigGameTimestampLag),
			Sport:     r.game.Sport,
			BigGame: &feed.BigGameData{
				Game:      r.game,
				Headline:  bigGameHeadline(r.game),
				HypeScore: r.hype,
			},
		})
	}
	return posts
}

// appendStandoutPosts adds a post for every standout line in the game's
// box score, stopping at the window cap.
func appendStandoutPosts(posts []feed.Post, g game.Game, summary boxscore.BoxScore, maxPosts int) []feed.Post {
	profile, ok := performance.For(g.Sport)
	if !ok {
		return posts
	}
	winnerID, _ := game.WinnerID(g)

	for _, teamBox := range summary.Teams {
		side, known := g.Team(teamBox.TeamID)
		for _, athlete := range teamBox.Athletes {
			if len(posts) >= maxPosts {
				return posts
			}
			if !profile.Standout(athlete.Stats) {
				continue
			}

			data := &feed.PlayerPerformanceData{
				GameID:      g.ID,
				AthleteID:   athlete.AthleteID,
				AthleteName: athlete.Name,
				TeamID:      teamBox.TeamID,
				Headline:    profile.Headline(athlete.Stats),
				Stats:       athlete.Stats,
				Won:         teamBox.TeamID == winnerID,
			}
			if known {
				data.TeamName = side.DisplayName
				data.TeamAbbreviation = side.Abbreviation
			}

			posts = append(posts, feed.Post{
				ID:          "perf-" + g.ID + "-" + athlete.AthleteID,
				Type:        feed.TypePlayerPerformance,
				Timestamp:   g.StartTime,
				Sport:       g.Sport,
				Performance: data,
			})
		}
	}
	return posts
}

// buildGameResultPosts reports finals that at least one user picked, with
// up to five pick entries in source order and the correct-picker tally.
func buildGameResultPosts(games []game.Game, picksByGame map[string][]pick.Pick) []feed.Post {
	var posts []feed.Post
	for _, g := range games {
		if !g.IsFinal() || !g.HasScores() {
			continue
		}
		gamePicks := picksByGame[g.ID]
		if len(gamePicks) == 0 {
			continue
		}

		winnerID, _ := game.WinnerID(g)

		correct := 0
		for _, p := range gamePicks {
			if winnerID != "" && p.PickedTeamID == winnerID {
				correct++
			}
		}

		entries := make([]feed.GameResultPickEntry, 0, gameResultMaxEntries)
		for _, p := range gamePicks {
			if len(entries) >= gameResultMaxEntries {
				break
			}
			entries = append(entries, feed.GameResultPickEntry{
				Username:     p.Username,
				PickedTeamID: p.PickedTeamID,
				Correct:      winnerID != "" && p.PickedTeamID == winnerID,
			})
		}

		posts = append(posts, feed.Post{
			ID:        "gameresult-" + g.ID,
			Type:      feed.TypeGameResult,
			Timestamp: g.StartTime.Add(gameResultDelay),
			Sport:     g.Sport,
			GameResult: &feed.GameResultData{
				Game:           g,
				WinnerTeamID:   winnerID,
				Entries:        entries,
				CorrectPickers: correct,
				TotalPickers:   len(gamePicks),
			},
		})
	}
	return posts
}

// buildNewsPosts deduplicates articles across sports by canonical link
// (headline when absent), merging team tags on duplicates, newest first.
func buildNewsPosts(articles []news.Article) []feed.Post {
	if len(articles) == 0 {
		return nil
	}

	var order []string
	merged := make(map[string]*news.Article, len(articles))
	for _, article := range articles {
		key := article.Key()
		if key == "" {
			continue
		}
		existing, ok := merged[key]
		if !ok {
			copied := article
			merged[key] = &copied
			order = append(order, key)
			continue
		}
		for _, tag := range article.TeamAbbreviations {
			if !containsString(existing.TeamAbbreviations, tag) {
				existing.TeamAbbreviations = append(existing.TeamAbbreviations, tag)
			}
		}
	}

	posts := make([]feed.Post, 0, len(order))
	for _, key := range order {
		article := merged[key]
		posts = append(posts, feed.Post{
			ID:        newsPostID(*article),
			Type:      feed.TypeNews,
			Timestamp: article.Published,
			Sport:     article.Sport,
			News:      article,
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	return posts
}

func newsPostID(article news.Article) string {
	id := fmt.Sprintf("news-%s-%d", article.Sport, article.Published.UnixMilli())
	if len(article.TeamAbbreviations) > 0 {
		id += "-" + strings.Join(article.TeamAbbreviations, "-")
	}
	return id
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
