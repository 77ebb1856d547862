package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sadanand-singh/news-agent/internal/ratelimit"
	"github.com/sadanand-singh/news-agent/internal/retry"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/news/search"

// Brave queries the Brave Search news API. The free tier allows roughly
// one request per second, so every call goes through the shared limiter.
type Brave struct {
	apiKey    string
	count     int
	freshness string
	client    *http.Client
	limiter   *ratelimit.Limiter
	retryCfg  retry.Config
	endpoint  string
}

func NewBrave(apiKey string, count int, freshness string, timeout time.Duration, limiter *ratelimit.Limiter, retryCfg retry.Config) *Brave {
	if count <= 0 {
		count = 8
	}
	if freshness == "" {
		freshness = "pw"
	}
	return &Brave{
		apiKey:    apiKey,
		count:     count,
		freshness: freshness,
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
		retryCfg:  retryCfg,
		endpoint:  braveEndpoint,
	}
}

func (b *Brave) Name() string { return "brave" }

type braveResponse struct {
	Results []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Age         string `json:"age"`
		PageAge     string `json:"page_age"`
	} `json:"results"`
}

func (b *Brave) Search(ctx context.Context, query string, days int) ([]Candidate, error) {
	var parsed braveResponse

	err := retry.Do(ctx, b.retryCfg, func(ctx context.Context) error {
		if b.limiter != nil {
			if err := b.limiter.Acquire("brave"); err != nil {
				return err
			}
		}

		freshness := b.freshness
		if days > 0 {
			freshness = braveFreshness(days)
		}

		q := url.Values{}
		q.Set("q", query)
		q.Set("count", strconv.Itoa(b.count))
		q.Set("freshness", freshness)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"?"+q.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", b.apiKey)

		resp, err := b.client.Do(req)
		if err != nil {
			return fmt.Errorf("brave request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("brave returned HTTP %d: %s", resp.StatusCode, body)
		}
		return json.NewDecoder(resp.Body).Decode(&parsed)
	})
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		published := r.PageAge
		if published == "" {
			published = r.Age
		}
		out = append(out, Candidate{
			Title:         r.Title,
			URL:           r.URL,
			Summary:       r.Description,
			PublishedDate: published,
			Provider:      b.Name(),
		})
	}
	return out, nil
}

// braveFreshness maps a day window onto Brave's coarse freshness buckets.
func braveFreshness(days int) string {
	switch {
	case days <= 1:
		return "pd"
	case days <= 7:
		return "pw"
	default:
		return "pm"
	}
}
