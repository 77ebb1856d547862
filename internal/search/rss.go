package search

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/sadanand-singh/news-agent/internal/logger"
)

// RSS serves candidates out of configured feeds. Feeds are fetched once
// per run and then matched against each query locally, so a topic with
// many queries does not re-download anything.
type RSS struct {
	feeds  []string
	parser *gofeed.Parser

	once  sync.Once
	items []*gofeed.Item
}

func NewRSS(feeds []string, timeout time.Duration) *RSS {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &RSS{feeds: feeds, parser: parser}
}

func (r *RSS) Name() string { return "rss" }

func (r *RSS) Search(ctx context.Context, query string, days int) ([]Candidate, error) {
	r.once.Do(func() { r.fetchAll(ctx) })

	cutoff := time.Now().AddDate(0, 0, -days)
	var out []Candidate
	for _, item := range r.items {
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		if !matchesQuery(item.Title+" "+item.Description, query) {
			continue
		}

		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}
		out = append(out, Candidate{
			Title:         item.Title,
			URL:           item.Link,
			Summary:       item.Description,
			PublishedDate: published,
			Provider:      r.Name(),
		})
	}
	return out, nil
}

func (r *RSS) fetchAll(ctx context.Context) {
	successCount := 0
	for _, url := range r.feeds {
		feed, err := r.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			logger.Warn("error parsing RSS feed", "url", url, "error", err)
			continue // log error, but don't stop
		}
		r.items = append(r.items, feed.Items...)
		successCount++
		logger.Debug("loaded feed", "url", url, "items", len(feed.Items))
	}
	logger.Info("processed RSS feeds", "ok", successCount, "total", len(r.feeds))
}

// matchesQuery checks the query phrase, or failing that every significant
// token, against the item text. Short tokens match on word boundaries so
// "ai" does not hit "said".
func matchesQuery(text, query string) bool {
	text = strings.ToLower(text)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}

	if strings.Contains(query, " ") && strings.Contains(text, query) {
		return true
	}

	tokens := strings.Fields(query)
	matched := false
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if len(tok) <= 3 {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(tok) + `\b`)
			if !re.MatchString(text) {
				return false
			}
			matched = true
			continue
		}
		if !strings.Contains(text, tok) {
			return false
		}
		matched = true
	}
	return matched
}
