package news

import (
	"context"
	"math"

	"github.com/sadanand-singh/news-agent/internal/logger"
	"github.com/sadanand-singh/news-agent/internal/metrics"
)

// Scorer reports semantic similarity between two articles in [0,1].
type Scorer interface {
	Score(ctx context.Context, a, b Article) (float64, error)
}

// Merger combines a duplicate into an already accepted article, typically
// via an LLM. Implementations may fail; Dedupe falls back to a plain
// source-list merge in that case.
type Merger interface {
	Merge(ctx context.Context, accepted, dup Article) (Article, error)
}

// Dedupe collapses near-duplicate coverage within one topic. Candidates are
// processed in discovery order; a candidate scoring at or above threshold
// against any accepted article is merged into the earliest such match,
// otherwise it is accepted as a new item. Scorer failures and out-of-range
// scores are treated as non-duplicate for that pair only.
func Dedupe(ctx context.Context, candidates []Article, threshold float64, scorer Scorer, merger Merger) []Article {
	accepted := make([]Article, 0, len(candidates))

	for _, cand := range candidates {
		c := cand.Clone()

		match := -1
		for i := range accepted {
			sim, err := scorer.Score(ctx, accepted[i], c)
			if err != nil {
				logger.Warn("similarity scorer failed, keeping pair distinct",
					"accepted", accepted[i].Title, "candidate", c.Title, "error", err)
				metrics.Global.IncrementScorerFailures()
				continue
			}
			if math.IsNaN(sim) || sim < 0 || sim > 1 {
				logger.Warn("similarity score out of range, keeping pair distinct",
					"accepted", accepted[i].Title, "candidate", c.Title, "score", sim)
				metrics.Global.IncrementScorerFailures()
				continue
			}
			if sim >= threshold {
				match = i
				break
			}
		}

		if match < 0 {
			accepted = append(accepted, c)
			continue
		}

		accepted[match] = mergeArticles(ctx, accepted[match], c, merger)
		metrics.Global.IncrementDuplicatesMerged()
		logger.Debug("merged duplicate", "into", accepted[match].Title, "dup", c.Title)
	}

	return accepted
}

// mergeArticles folds dup into accepted. The source-URL union is enforced
// regardless of what the merger returns, so no citation is ever lost.
func mergeArticles(ctx context.Context, accepted, dup Article, merger Merger) Article {
	merged := accepted
	if merger != nil {
		m, err := merger.Merge(ctx, accepted, dup)
		if err != nil {
			logger.Warn("merge failed, falling back to plain merge", "title", accepted.Title, "error", err)
		} else {
			merged = m
		}
	}

	merged.Sources = unionURLs(accepted.Sources, dup.Sources, merged.Sources)
	if merged.PublishedDate == "" {
		merged.PublishedDate = dup.PublishedDate
	}
	if merged.Summary == "" {
		merged.Summary = dup.Summary
	}
	return merged
}

// unionURLs concatenates URL lists preserving first-seen order and
// dropping exact repeats.
func unionURLs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, u := range list {
			if u == "" {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}
