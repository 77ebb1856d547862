// Package search collects raw news candidates from external providers:
// Brave Search, Tavily and plain RSS feeds. Failures are isolated per
// (topic, provider) pair; a broken provider contributes zero candidates.
package search

import (
	"context"

	"github.com/sadanand-singh/news-agent/internal/logger"
	"github.com/sadanand-singh/news-agent/internal/metrics"
)

// Candidate is one raw article as returned by a provider, before any
// dedup or filtering.
type Candidate struct {
	Title         string
	URL           string
	Summary       string
	PublishedDate string
	Provider      string
}

// Provider runs one search query and returns raw candidates. days bounds
// how far back results may reach.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, days int) ([]Candidate, error)
}

// Collector fans a topic's queries out over every configured provider.
type Collector struct {
	Providers     []Provider
	MaxQueries    int // cap on query fan-out per topic
	MaxCandidates int // cap on candidates returned per topic
}

// CollectTopic gathers candidates for one topic. days is the recency
// window, computed from the topic's declared groups before augmentation.
// Results are deduplicated by URL in discovery order and capped. Provider
// errors are recoverable: they are logged and the remaining providers
// continue.
func (c *Collector) CollectTopic(ctx context.Context, topic string, groups []string, days int) []Candidate {
	queries := Queries(topic, groups, c.MaxQueries)

	seen := make(map[string]struct{})
	var out []Candidate

	for _, p := range c.Providers {
		for _, q := range queries {
			if ctx.Err() != nil {
				return out
			}
			results, err := p.Search(ctx, q, days)
			if err != nil {
				logger.Warn("provider search failed", "provider", p.Name(), "topic", topic, "query", q, "error", err)
				metrics.Global.IncrementProviderFailures()
				continue
			}
			for _, r := range results {
				if r.URL == "" || r.Title == "" {
					continue
				}
				if _, dup := seen[r.URL]; dup {
					continue
				}
				seen[r.URL] = struct{}{}
				out = append(out, r)
				if c.MaxCandidates > 0 && len(out) >= c.MaxCandidates {
					logger.Debug("candidate cap reached", "topic", topic, "cap", c.MaxCandidates)
					return out
				}
			}
		}
	}

	logger.Info("collected candidates", "topic", topic, "count", len(out))
	return out
}
