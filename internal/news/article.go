// Package news holds the core aggregation pipeline: dedup, quality
// filtering, group taxonomy resolution, sorting and output projection.
package news

import (
	"net/url"
	"strings"
)

// Article is a single news item after collection. Sources holds every URL
// that reported the story; Groups is filled in by the taxonomy resolver.
type Article struct {
	Title         string   `yaml:"title"`
	Summary       string   `yaml:"summary"`
	Sources       []string `yaml:"sources"`
	PublishedDate string   `yaml:"published_date,omitempty"`
	Groups        []string `yaml:"groups,omitempty"`
}

// Clone returns a deep copy so pipeline stages never alias slices of the
// input collection.
func (a Article) Clone() Article {
	c := a
	c.Sources = append([]string(nil), a.Sources...)
	c.Groups = append([]string(nil), a.Groups...)
	return c
}

// identityKey is the exact-match identity used for cross-topic group
// merging. Within-topic dedup uses semantic similarity instead; the two
// notions are intentionally different.
func (a Article) identityKey() string {
	return strings.ToLower(strings.TrimSpace(a.Title)) + "|" + strings.TrimSpace(a.PublishedDate)
}

// Topic is one configured subject area with its declared groups and the
// articles collected for it.
type Topic struct {
	Name   string
	Groups []string
	News   []Article
}

// Clone deep-copies the topic.
func (t Topic) Clone() Topic {
	c := t
	c.Groups = append([]string(nil), t.Groups...)
	c.News = make([]Article, 0, len(t.News))
	for _, a := range t.News {
		c.News = append(c.News, a.Clone())
	}
	return c
}

// TopicCollection maps topic name to its data for one pipeline run.
type TopicCollection map[string]Topic

// GroupIndex maps a normalized group label to the articles carrying it.
// Every article in the index reports the complete set of groups it was
// placed into, across all contributing topics.
type GroupIndex map[string][]Article

// NormalizeGroup is the canonical form used as a group key.
func NormalizeGroup(g string) string {
	return strings.ToLower(strings.TrimSpace(g))
}

// Domain extracts the registrable host from a source URL, lowercased and
// without a www. prefix. Unparseable URLs yield "unknown".
func Domain(raw string) string {
	if raw == "" {
		return "unknown"
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	host := strings.ToLower(u.Host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}
