// Package scraper backfills thin provider snippets with text extracted
// from the article page itself.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sadanand-singh/news-agent/internal/logger"
)

// content selectors tried in order; most news sites hit one of these.
var contentSelectors = []string{
	"article p",
	"main p",
	".article-body p",
	".post-content p",
	".entry-content p",
	"div[itemprop=articleBody] p",
}

const maxParagraphs = 6

type Scraper struct {
	client      *http.Client
	concurrency int
}

func New(timeout time.Duration, concurrency int) *Scraper {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Scraper{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
	}
}

// ExtractText fetches one page and pulls out the leading article
// paragraphs, falling back to the og:description meta tag.
func (s *Scraper) ExtractText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; newsagent/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	for _, sel := range contentSelectors {
		var parts []string
		doc.Find(sel).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := strings.TrimSpace(p.Text())
			if len(text) > 40 {
				parts = append(parts, text)
			}
			return len(parts) < maxParagraphs
		})
		if len(parts) >= 2 {
			return strings.Join(parts, "\n\n"), nil
		}
	}

	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		return strings.TrimSpace(desc), nil
	}
	return "", fmt.Errorf("can't get content")
}

// ExtractAll fetches several pages in parallel and returns url -> text
// for the ones that worked.
func (s *Scraper) ExtractAll(ctx context.Context, urls []string) map[string]string {
	var mu sync.Mutex
	results := make(map[string]string)

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := s.ExtractText(ctx, url)
			if err != nil {
				logger.Debug("scrape failed", "url", url, "error", err)
				return
			}
			mu.Lock()
			results[url] = text
			mu.Unlock()
		}(url)
	}

	wg.Wait()
	return results
}
