package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the per-run configuration: YAML file first, environment
// overrides second. API keys come from the environment only.
type Config struct {
	// Pipeline settings
	TopicsFile          string   `yaml:"topics_file"`
	OutputDir           string   `yaml:"output_dir"`
	NewsDestFile        string   `yaml:"news_dest_file"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	MaxItemsPerTopic    int      `yaml:"max_items_per_topic"`
	IgnoredGroups       []string `yaml:"ignored_groups"`
	LowValueDomains     []string `yaml:"low_value_domains"`

	// Search provider settings
	Brave  BraveConfig  `yaml:"brave"`
	Tavily TavilyConfig `yaml:"tavily"`
	Feeds  []string     `yaml:"feeds"`

	// Gemini settings
	GeminiAPIKey      string `yaml:"-"`
	EmbeddingModel    string `yaml:"embedding_model"`
	MergeModel        string `yaml:"merge_model"`
	MaxGeminiRequests int    `yaml:"max_gemini_requests"`

	// Scraper settings
	EnrichSummaries   bool `yaml:"enrich_summaries"`
	MinSummaryRunes   int  `yaml:"min_summary_runes"`
	ScrapeConcurrency int  `yaml:"scrape_concurrency"`

	// Embedding cache settings
	EmbedCachePath     string `yaml:"embed_cache_path"`
	EmbedCacheTTLHours int    `yaml:"embed_cache_ttl_hours"`

	// App settings. Durations come from env (seconds), not YAML.
	TopicConcurrency int           `yaml:"topic_concurrency"`
	RequestTimeout   time.Duration `yaml:"-"`
	RunTimeout       time.Duration `yaml:"-"`
	RetryAttempts    int           `yaml:"retry_attempts"`
	RetryDelay       time.Duration `yaml:"-"`
	Debug            bool          `yaml:"-"`
}

type BraveConfig struct {
	APIKey    string `yaml:"-"`
	Count     int    `yaml:"count"`
	Freshness string `yaml:"freshness"`
}

type TavilyConfig struct {
	APIKey      string `yaml:"-"`
	MaxResults  int    `yaml:"max_results"`
	Days        int    `yaml:"days"`
	SearchDepth string `yaml:"search_depth"`
}

// Load reads the YAML config file (optional) and applies environment
// overrides, then validates. Validation failures are fatal: the pipeline
// cannot produce a meaningful partial result from a broken configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{
		// Default values
		TopicsFile:          "configs/topics.yaml",
		OutputDir:           "output",
		SimilarityThreshold: 0.95,
		MaxItemsPerTopic:    20,
		IgnoredGroups:       []string{"recent events", "recent developments", "latest news"},
		LowValueDomains:     []string{"medium.com", "en.wikipedia.org", "reddit.com"},
		Brave:               BraveConfig{Count: 8, Freshness: "pw"},
		Tavily:              TavilyConfig{MaxResults: 8, Days: 2, SearchDepth: "basic"},
		EmbeddingModel:      "text-embedding-004",
		MergeModel:          "gemini-1.5-flash",
		MaxGeminiRequests:   0,
		MinSummaryRunes:     200,
		ScrapeConcurrency:   8,
		EmbedCachePath:      "embeddings_cache.json",
		EmbedCacheTTLHours:  48,
		TopicConcurrency:    4,
		RequestTimeout:      30 * time.Second,
		RunTimeout:          20 * time.Minute,
		RetryAttempts:       3,
		RetryDelay:          5 * time.Second,
	}

	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	// API keys live in the environment, never in the config file
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Brave.APIKey = os.Getenv("BRAVE_SEARCH_API_KEY")
	cfg.Tavily.APIKey = os.Getenv("TAVILY_API_KEY")

	cfg.TopicsFile = getEnvOrDefault("TOPICS_FILE", cfg.TopicsFile)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.NewsDestFile = getEnvOrDefault("NEWS_DEST_FILE", cfg.NewsDestFile)
	cfg.EmbedCachePath = getEnvOrDefault("EMBED_CACHE_PATH", cfg.EmbedCachePath)

	if v := os.Getenv("SIMILARITY_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SimilarityThreshold = val
		}
	}
	cfg.MaxItemsPerTopic = getEnvIntOrDefault("MAX_ITEMS_PER_TOPIC", cfg.MaxItemsPerTopic)
	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", cfg.MaxGeminiRequests)
	cfg.TopicConcurrency = getEnvIntOrDefault("TOPIC_CONCURRENCY", cfg.TopicConcurrency)
	cfg.ScrapeConcurrency = getEnvIntOrDefault("SCRAPE_CONCURRENCY", cfg.ScrapeConcurrency)
	cfg.EmbedCacheTTLHours = getEnvIntOrDefault("EMBED_CACHE_TTL_HOURS", cfg.EmbedCacheTTLHours)

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RUN_TIMEOUT_MINUTES", 0); v > 0 {
		cfg.RunTimeout = time.Duration(v) * time.Minute
	}

	if os.Getenv("ENRICH_SUMMARIES") == "true" {
		cfg.EnrichSummaries = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // file is optional, defaults + env are enough
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.TopicsFile == "" {
		return fmt.Errorf("topics_file is required")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.MaxItemsPerTopic <= 0 {
		return fmt.Errorf("max_items_per_topic must be positive, got %d", c.MaxItemsPerTopic)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Brave.APIKey == "" && c.Tavily.APIKey == "" && len(c.Feeds) == 0 {
		return fmt.Errorf("no news source configured: set BRAVE_SEARCH_API_KEY, TAVILY_API_KEY or feeds")
	}
	return nil
}
