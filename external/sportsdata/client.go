package sportsdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pickrush/pickrush/internal/domain/boxscore"
	"github.com/pickrush/pickrush/internal/domain/game"
	"github.com/pickrush/pickrush/internal/domain/news"
	"github.com/pickrush/pickrush/internal/domain/team"
	"github.com/pickrush/pickrush/internal/platform/logging"
	"github.com/pickrush/pickrush/internal/platform/resilience"
	"github.com/pickrush/pickrush/internal/usecase"
)

const (
	defaultBaseURL  = "https://site.api.sports-feed.io/apis/site/v2/sports"
	responseByteCap = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)
var errProviderTransient = crerr.New("sports data transient failure")
var errProviderNotFound = crerr.New("sports data resource not found")

// sportPaths maps each sport to the provider's league path segment.
var sportPaths = map[game.Sport]string{
	game.SportBasketball: "basketball/nba",
	game.SportFootball:   "football/nfl",
	game.SportBaseball:   "baseball/mlb",
	game.SportHockey:     "hockey/nhl",
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the upstream scores provider. Game ids are namespaced as
// "<sport>-<providerID>" so a bare id round-trips back to the right league
// endpoint without a lookup table.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.GamesProvider = (*Client)(nil)
var _ usecase.BoxScoreProvider = (*Client)(nil)
var _ usecase.NewsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GamesByDate fetches every sport's scoreboard for one calendar day. A sport
// whose fetch fails contributes nothing rather than failing the whole day.
func (c *Client) GamesByDate(ctx context.Context, date string) ([]game.Game, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var out []game.Game
	var lastErr error
	for _, sport := range game.Sports {
		path := "/" + sportPaths[sport] + "/scoreboard"
		query := map[string]string{"dates": day.Format("20060102")}

		var envelope scoreboardEnvelope
		if err := c.doJSON(ctx, path, query, &envelope); err != nil {
			lastErr = err
			c.logger.WarnContext(ctx, "scoreboard fetch failed", "sport", sport, "date", date, "error", err)
			continue
		}

		for _, event := range envelope.Events {
			g, ok := mapEvent(sport, date, event)
			if !ok {
				continue
			}
			out = append(out, g)
		}
	}

	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *Client) GameByID(ctx context.Context, id string) (game.Game, bool, error) {
	sport, providerID, err := splitGameID(id)
	if err != nil {
		return game.Game{}, false, err
	}

	path := "/" + sportPaths[sport] + "/summary"
	query := map[string]string{"event": providerID}

	var envelope summaryEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		if crerr.Is(err, errProviderNotFound) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, err
	}
	if len(envelope.Header.Competitions) == 0 {
		return game.Game{}, false, nil
	}

	event := scoreboardEvent{
		ID:           providerID,
		Date:         envelope.Header.Competitions[0].Date,
		Competitions: envelope.Header.Competitions,
	}
	date := ""
	if start, ok := parseEventTime(event.Date); ok {
		date = start.Format("2006-01-02")
	}

	g, ok := mapEvent(sport, date, event)
	if !ok {
		return game.Game{}, false, nil
	}
	return g, true, nil
}

func (c *Client) Summary(ctx context.Context, gameID string) (boxscore.BoxScore, error) {
	sport, providerID, err := splitGameID(gameID)
	if err != nil {
		return boxscore.BoxScore{}, err
	}

	path := "/" + sportPaths[sport] + "/summary"
	query := map[string]string{"event": providerID}

	var envelope summaryEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return boxscore.BoxScore{}, err
	}

	out := boxscore.BoxScore{GameID: gameID}
	for _, block := range envelope.Boxscore.Players {
		teamBox := boxscore.TeamBox{TeamID: block.Team.ID}
		for _, group := range block.Statistics {
			for _, athlete := range group.Athletes {
				line := boxscore.AthleteLine{
					AthleteID: athlete.Athlete.ID,
					Name:      athlete.Athlete.DisplayName,
					Position:  athlete.Athlete.Position.Abbreviation,
					Stats:     boxscore.BuildStatLine(group.Labels, athlete.Stats),
				}
				if line.AthleteID == "" {
					continue
				}
				teamBox.Athletes = append(teamBox.Athletes, line)
			}
		}
		if len(teamBox.Athletes) > 0 {
			out.Teams = append(out.Teams, teamBox)
		}
	}
	return out, nil
}

func (c *Client) ArticlesBySport(ctx context.Context, sport game.Sport, limit int) ([]news.Article, error) {
	path, ok := sportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("unknown sport %q", sport)
	}
	if limit <= 0 {
		limit = 5
	}

	var envelope newsEnvelope
	query := map[string]string{"limit": strconv.Itoa(limit)}
	if err := c.doJSON(ctx, "/"+path+"/news", query, &envelope); err != nil {
		return nil, err
	}

	out := make([]news.Article, 0, len(envelope.Articles))
	for _, item := range envelope.Articles {
		article := news.Article{
			Sport:       sport,
			Headline:    strings.TrimSpace(item.Headline),
			Description: strings.TrimSpace(item.Description),
			Link:        strings.TrimSpace(item.Links.Web.Href),
		}
		if article.Headline == "" {
			continue
		}
		if published, err := time.Parse(time.RFC3339, item.Published); err == nil {
			article.Published = published.UTC()
		}
		if len(item.Images) > 0 {
			article.ImageURL = strings.TrimSpace(item.Images[0].URL)
		}
		for _, category := range item.Categories {
			abbr := strings.TrimSpace(category.Team.Abbreviation)
			if category.Type == "team" && abbr != "" {
				article.TeamAbbreviations = append(article.TeamAbbreviations, abbr)
			}
		}
		out = append(out, article)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sports data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.apiKey != "" {
		values.Set("apikey", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, responseByteCap))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: status=404", errProviderNotFound)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errProviderTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sports data request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "apikey=REDACTED")
}

func splitGameID(id string) (game.Sport, string, error) {
	sportPart, providerID, found := strings.Cut(id, "-")
	if !found || providerID == "" {
		return "", "", fmt.Errorf("malformed game id %q", id)
	}
	sport, ok := game.ParseSport(sportPart)
	if !ok {
		return "", "", fmt.Errorf("unknown sport in game id %q", id)
	}
	return sport, providerID, nil
}

func mapEvent(sport game.Sport, date string, event scoreboardEvent) (game.Game, bool) {
	if event.ID == "" || len(event.Competitions) == 0 {
		return game.Game{}, false
	}
	competition := event.Competitions[0]

	g := game.Game{
		ID:     string(sport) + "-" + event.ID,
		Sport:  sport,
		Date:   date,
		Status: mapState(competition.Status.Type.State),
	}
	if start, ok := parseEventTime(event.Date); ok {
		g.StartTime = start
	}

	for _, competitor := range competition.Competitors {
		side := team.Team{
			ID:           competitor.Team.ID,
			Name:         competitor.Team.Name,
			DisplayName:  competitor.Team.DisplayName,
			Abbreviation: competitor.Team.Abbreviation,
			LogoURL:      competitor.Team.Logo,
			Record:       totalRecord(competitor.Records),
		}
		score := parseScore(competitor.Score, g.Status)

		switch strings.ToLower(competitor.HomeAway) {
		case "home":
			g.HomeTeam = side
			g.HomeScore = score
		case "away":
			g.AwayTeam = side
			g.AwayScore = score
		}
	}

	if g.HomeTeam.ID == "" || g.AwayTeam.ID == "" {
		return game.Game{}, false
	}
	return g, true
}

// parseEventTime accepts both second and minute precision timestamps; the
// provider omits seconds on scoreboard events.
func parseEventTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func mapState(state string) string {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "in":
		return game.StatusInProgress
	case "post":
		return game.StatusFinal
	default:
		return game.StatusScheduled
	}
}

// parseScore keeps scores nil before tipoff; providers report "0" for
// scheduled games and that must not read as a played result.
func parseScore(raw, status string) *int {
	if status == game.StatusScheduled {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}

func totalRecord(records []recordInfo) string {
	for _, record := range records {
		if strings.EqualFold(record.Type, "total") {
			return strings.TrimSpace(record.Summary)
		}
	}
	if len(records) > 0 {
		return strings.TrimSpace(records[0].Summary)
	}
	return ""
}
