// Package app wires configuration, providers and the pipeline stages into
// one collection run.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sadanand-singh/news-agent/internal/config"
	"github.com/sadanand-singh/news-agent/internal/gemini"
	"github.com/sadanand-singh/news-agent/internal/logger"
	"github.com/sadanand-singh/news-agent/internal/metrics"
	"github.com/sadanand-singh/news-agent/internal/news"
	"github.com/sadanand-singh/news-agent/internal/output"
	"github.com/sadanand-singh/news-agent/internal/ratelimit"
	"github.com/sadanand-singh/news-agent/internal/retry"
	"github.com/sadanand-singh/news-agent/internal/scraper"
	"github.com/sadanand-singh/news-agent/internal/search"
	"github.com/sadanand-singh/news-agent/internal/storage"
)

// Run executes one full collection: fetch candidates per topic, dedup,
// filter, group, sort and write the output document. Per-topic failures
// are absorbed; only configuration-level problems abort the run.
func Run(cfg *config.Config) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	// Topics must load before any provider is touched.
	topics, err := config.LoadTopics(cfg.TopicsFile)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	limiter := ratelimit.New(24 * time.Hour)
	limiter.SetMinInterval("brave", 1500*time.Millisecond) // free tier pacing
	if cfg.MaxGeminiRequests > 0 {
		limiter.SetBudget("gemini", cfg.MaxGeminiRequests)
	}

	embedCache := storage.NewEmbedCache(cfg.EmbedCachePath, cfg.EmbedCacheTTLHours)
	if err := embedCache.Load(); err != nil {
		logger.Warn("could not load embedding cache, starting cold", "error", err)
	}

	ai, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.MergeModel, limiter, embedCache)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("gemini setup failed: %w", err)
	}
	defer ai.Close()

	retryCfg := retry.Config{MaxAttempts: cfg.RetryAttempts, Delay: cfg.RetryDelay, Backoff: true}
	collector := &search.Collector{
		Providers:     buildProviders(cfg, limiter, retryCfg),
		MaxQueries:    12,
		MaxCandidates: cfg.MaxItemsPerTopic,
	}

	var scr *scraper.Scraper
	if cfg.EnrichSummaries {
		scr = scraper.New(cfg.RequestTimeout, cfg.ScrapeConcurrency)
	}

	// Per-topic work is independent; only the final collection map is
	// shared, behind a mutex. Topic failures never cancel siblings.
	var mu sync.Mutex
	collection := make(news.TopicCollection)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.TopicConcurrency)
	for name, spec := range topics {
		name, spec := name, spec
		g.Go(func() error {
			topic, ok := processTopic(gctx, cfg, collector, scr, ai, name, spec)
			metrics.Global.IncrementTopicsProcessed()
			if !ok {
				return nil
			}
			mu.Lock()
			collection[name] = topic
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers only ever return nil; errors are absorbed per topic

	// The remaining stages are cheap and strictly ordered: quality filter
	// on merged source lists, then taxonomy, then projection.
	filtered := news.FilterQuality(collection, cfg.LowValueDomains)
	index := news.ResolveGroups(filtered, cfg.IgnoredGroups)
	doc := news.Project(filtered, index, cfg.IgnoredGroups)

	writer := output.New(cfg.OutputDir, cfg.NewsDestFile)
	if _, err := writer.Write(doc); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	if err := embedCache.Save(); err != nil {
		logger.Warn("could not save embedding cache", "error", err)
	}

	metrics.Global.SetLastRun()
	logger.Info("run complete",
		"topics_in", len(topics), "topics_out", len(doc.Topics),
		"groups", len(doc.Groups), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func buildProviders(cfg *config.Config, limiter *ratelimit.Limiter, retryCfg retry.Config) []search.Provider {
	var providers []search.Provider
	if cfg.Brave.APIKey != "" {
		providers = append(providers, search.NewBrave(cfg.Brave.APIKey, cfg.Brave.Count, cfg.Brave.Freshness, cfg.RequestTimeout, limiter, retryCfg))
	}
	if cfg.Tavily.APIKey != "" {
		providers = append(providers, search.NewTavily(cfg.Tavily.APIKey, cfg.Tavily.MaxResults, cfg.Tavily.Days, cfg.Tavily.SearchDepth, cfg.RequestTimeout, limiter, retryCfg))
	}
	if len(cfg.Feeds) > 0 {
		providers = append(providers, search.NewRSS(cfg.Feeds, cfg.RequestTimeout))
	}
	return providers
}

// processTopic runs the per-topic half of the pipeline: collect, enrich,
// cap, dedup. Returns ok=false when the topic ends up empty.
func processTopic(ctx context.Context, cfg *config.Config, collector *search.Collector, scr *scraper.Scraper, ai *gemini.Client, name string, spec config.TopicSpec) (news.Topic, bool) {
	searchGroups := search.AugmentGroups(spec.Groups)
	days := search.DaysFilter(spec.Groups)

	candidates := collector.CollectTopic(ctx, name, searchGroups, days)
	metrics.Global.AddCandidatesCollected(len(candidates))
	if len(candidates) == 0 {
		logger.Warn("no candidates collected for topic", "topic", name)
		return news.Topic{}, false
	}

	articles := toArticles(candidates)
	if scr != nil {
		enrichSummaries(ctx, scr, cfg.MinSummaryRunes, articles)
	}

	deduped := news.Dedupe(ctx, articles, cfg.SimilarityThreshold, ai, ai)
	if len(deduped) == 0 && len(articles) > 0 {
		// never let a broken dedup pass wipe out a topic
		logger.Warn("dedup returned nothing, keeping originals", "topic", name)
		deduped = articles
	}

	logger.Info("topic processed", "topic", name, "candidates", len(articles), "unique", len(deduped))
	return news.Topic{Name: name, Groups: searchGroups, News: deduped}, true
}

func toArticles(candidates []search.Candidate) []news.Article {
	out := make([]news.Article, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, news.Article{
			Title:         c.Title,
			Summary:       c.Summary,
			Sources:       []string{c.URL},
			PublishedDate: c.PublishedDate,
		})
	}
	return out
}

// enrichSummaries replaces summaries shorter than the configured floor
// with text scraped from the article page, when the scrape works out.
func enrichSummaries(ctx context.Context, scr *scraper.Scraper, minRunes int, articles []news.Article) {
	var thin []string
	for _, a := range articles {
		if len([]rune(a.Summary)) < minRunes && len(a.Sources) > 0 {
			thin = append(thin, a.Sources[0])
		}
	}
	if len(thin) == 0 {
		return
	}

	extracted := scr.ExtractAll(ctx, thin)
	for i := range articles {
		if len(articles[i].Sources) == 0 {
			continue
		}
		if text, ok := extracted[articles[i].Sources[0]]; ok && len([]rune(text)) > len([]rune(articles[i].Summary)) {
			articles[i].Summary = text
		}
	}
}
