// Package gemini backs the pipeline's semantic pieces with the Gemini
// API: embedding-based similarity scoring and LLM merging of duplicate
// articles.
package gemini

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sadanand-singh/news-agent/internal/news"
	"github.com/sadanand-singh/news-agent/internal/ratelimit"
	"github.com/sadanand-singh/news-agent/internal/storage"
)

type Client struct {
	client         *genai.Client
	embeddingModel string
	mergeModel     string
	limiter        *ratelimit.Limiter
	cache          *storage.EmbedCache
}

func NewClient(ctx context.Context, apiKey, embeddingModel, mergeModel string, limiter *ratelimit.Limiter, cache *storage.EmbedCache) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		client:         client,
		embeddingModel: embeddingModel,
		mergeModel:     mergeModel,
		limiter:        limiter,
		cache:          cache,
	}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// embedText returns the embedding vector for a text, consulting the file
// cache first so overlapping runs do not re-pay the API call.
func (c *Client) embedText(ctx context.Context, text string) ([]float32, error) {
	key := storage.Key(text)
	if c.cache != nil {
		if vec, ok := c.cache.Get(key); ok {
			return vec, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Acquire("gemini"); err != nil {
			return nil, err
		}
	}

	em := c.client.EmbeddingModel(c.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding from Gemini")
	}

	if c.cache != nil {
		c.cache.Put(key, res.Embedding.Values)
	}
	return res.Embedding.Values, nil
}

// Score implements news.Scorer: cosine similarity of the two articles'
// title+summary embeddings, clamped into [0,1].
func (c *Client) Score(ctx context.Context, a, b news.Article) (float64, error) {
	va, err := c.embedText(ctx, embeddingText(a))
	if err != nil {
		return 0, err
	}
	vb, err := c.embedText(ctx, embeddingText(b))
	if err != nil {
		return 0, err
	}

	sim, err := cosine(va, vb)
	if err != nil {
		return 0, err
	}
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

func embeddingText(a news.Article) string {
	return a.Title + "\n" + a.Summary
}

func cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("zero-norm embedding")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// Merge implements news.Merger: asks the model to fold two duplicate
// articles into one. The caller enforces the source-URL union on top of
// whatever comes back.
func (c *Client) Merge(ctx context.Context, accepted, dup news.Article) (news.Article, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire("gemini"); err != nil {
			return news.Article{}, err
		}
	}

	model := c.client.GenerativeModel(c.mergeModel)

	prompt := fmt.Sprintf(`You are tasked with merging two similar news items into one comprehensive item.

News Item 1:
Title: %s
Summary: %s
Sources: %s
Published Date: %s

News Item 2:
Title: %s
Summary: %s
Sources: %s
Published Date: %s

Merge these into a single news item that:
1. Creates a new title that best captures both articles (max 15 words)
2. Combines information from both summaries into a comprehensive summary (150-250 words)
3. Combines all unique sources from both items
4. Uses the more recent published date if available

Return your response in this exact format:
TITLE: [merged title]
SUMMARY: [merged summary]
SOURCES: [comma-separated list of all unique URLs]
PUBLISHED_DATE: [more recent date or 'Unknown' if both are unknown]`,
		accepted.Title, accepted.Summary, strings.Join(accepted.Sources, ", "), orUnknown(accepted.PublishedDate),
		dup.Title, dup.Summary, strings.Join(dup.Sources, ", "), orUnknown(dup.PublishedDate))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return news.Article{}, fmt.Errorf("failed to generate merge: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return news.Article{}, fmt.Errorf("no response from Gemini")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	merged, err := parseMergeResponse(text)
	if err != nil {
		return news.Article{}, err
	}

	merged.Groups = append([]string(nil), accepted.Groups...)
	if merged.Title == "" {
		merged.Title = accepted.Title
	}
	if merged.Summary == "" {
		merged.Summary = accepted.Summary
	}
	if merged.PublishedDate == "" {
		merged.PublishedDate = accepted.PublishedDate
	}
	return merged, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// parseMergeResponse reads the TITLE/SUMMARY/SOURCES/PUBLISHED_DATE line
// format. Unlabeled lines continue the summary, which the model tends to
// split over several lines.
func parseMergeResponse(response string) (news.Article, error) {
	var out news.Article
	var summary strings.Builder

	current := ""
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TITLE:"):
			out.Title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
			current = "title"
		case strings.HasPrefix(line, "SUMMARY:"):
			summary.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:")))
			current = "summary"
		case strings.HasPrefix(line, "SOURCES:"):
			for _, s := range strings.Split(strings.TrimPrefix(line, "SOURCES:"), ",") {
				if s = strings.TrimSpace(s); s != "" {
					out.Sources = append(out.Sources, s)
				}
			}
			current = "sources"
		case strings.HasPrefix(line, "PUBLISHED_DATE:"):
			date := strings.TrimSpace(strings.TrimPrefix(line, "PUBLISHED_DATE:"))
			if !strings.EqualFold(date, "unknown") {
				out.PublishedDate = date
			}
			current = "date"
		default:
			if current == "summary" {
				summary.WriteString(" ")
				summary.WriteString(line)
			}
		}
	}

	out.Summary = strings.TrimSpace(summary.String())
	if out.Title == "" && out.Summary == "" {
		return news.Article{}, fmt.Errorf("could not parse merge response")
	}
	return out, nil
}
