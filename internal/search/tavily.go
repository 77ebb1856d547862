package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sadanand-singh/news-agent/internal/ratelimit"
	"github.com/sadanand-singh/news-agent/internal/retry"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily queries the Tavily search API in news mode.
type Tavily struct {
	apiKey      string
	maxResults  int
	defaultDays int
	searchDepth string
	client      *http.Client
	limiter     *ratelimit.Limiter
	retryCfg    retry.Config
	endpoint    string
}

func NewTavily(apiKey string, maxResults, defaultDays int, searchDepth string, timeout time.Duration, limiter *ratelimit.Limiter, retryCfg retry.Config) *Tavily {
	if maxResults <= 0 {
		maxResults = 8
	}
	if defaultDays <= 0 {
		defaultDays = 2
	}
	if searchDepth == "" {
		searchDepth = "basic"
	}
	return &Tavily{
		apiKey:      apiKey,
		maxResults:  maxResults,
		defaultDays: defaultDays,
		searchDepth: searchDepth,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
		retryCfg:    retryCfg,
		endpoint:    tavilyEndpoint,
	}
}

func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	Topic       string `json:"topic"`
	Days        int    `json:"days"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Content       string `json:"content"`
		PublishedDate string `json:"published_date"`
	} `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, query string, days int) ([]Candidate, error) {
	if days <= 0 {
		days = t.defaultDays
	}

	var parsed tavilyResponse

	err := retry.Do(ctx, t.retryCfg, func(ctx context.Context) error {
		if t.limiter != nil {
			if err := t.limiter.Acquire("tavily"); err != nil {
				return err
			}
		}

		payload, err := json.Marshal(tavilyRequest{
			APIKey:      t.apiKey,
			Query:       query,
			Topic:       "news",
			Days:        days,
			MaxResults:  t.maxResults,
			SearchDepth: t.searchDepth,
		})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("tavily request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("tavily returned HTTP %d: %s", resp.StatusCode, body)
		}
		return json.NewDecoder(resp.Body).Decode(&parsed)
	})
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		out = append(out, Candidate{
			Title:         r.Title,
			URL:           r.URL,
			Summary:       r.Content,
			PublishedDate: r.PublishedDate,
			Provider:      t.Name(),
		})
	}
	return out, nil
}
