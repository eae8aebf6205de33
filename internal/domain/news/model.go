package news

import (
	"time"

	"github.com/pickrush/pickrush/internal/domain/game"
)

// Article is one news item from the sports-data provider.
type Article struct {
	Sport             game.Sport
	Headline          string
	Description       string
	Published         time.Time
	Link              string
	ImageURL          string
	TeamAbbreviations []string
}

// Key returns the article's deduplication key: the canonical link, falling
// back to the headline when the provider omits one.
func (a Article) Key() string {
	if a.Link != "" {
		return a.Link
	}
	return a.Headline
}
