// Package news fetches headline lists from RSS feeds.
package news

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"finbot/internal/errors"
	"finbot/internal/models"
)

// Fetcher retrieves and parses RSS feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a new RSS fetcher.
func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &Fetcher{parser: parser}
}

// Fetch retrieves the feed at url and returns at most limit items. Transport
// and parse failures return an error, distinct from an empty feed. Items
// without a title or link are skipped; an unparsable publish date keeps the
// feed's raw string.
func (f *Fetcher) Fetch(ctx context.Context, url string, limit int) ([]models.NewsItem, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, errors.NewUpstreamError("rss", "fetch", err)
	}

	items := make([]models.NewsItem, 0, limit)
	for _, it := range feed.Items {
		if it.Title == "" || it.Link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title:       it.Title,
			Link:        it.Link,
			Published:   it.Published,
			PublishedAt: it.PublishedParsed,
		})
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}
