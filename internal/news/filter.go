package news

import (
	"strings"

	"github.com/sadanand-singh/news-agent/internal/logger"
	"github.com/sadanand-singh/news-agent/internal/metrics"
)

// FilterQuality drops articles that have no credible citation: an article
// is rejected when its source list is empty, or when every source domain
// matches the low-value set. Topics left without articles are pruned.
// The input collection is not modified; a new collection is returned.
//
// Must run after dedup (merged source lists decide quality) and before
// grouping (pruned topics must not contribute group labels).
func FilterQuality(topics TopicCollection, lowValueDomains []string) TopicCollection {
	lv := make([]string, 0, len(lowValueDomains))
	for _, d := range lowValueDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			lv = append(lv, d)
		}
	}

	out := make(TopicCollection, len(topics))
	for name, topic := range topics {
		kept := make([]Article, 0, len(topic.News))
		for _, a := range topic.News {
			if rejectArticle(a, lv) {
				metrics.Global.IncrementArticlesFiltered()
				logger.Debug("dropped low-value article", "topic", name, "title", a.Title)
				continue
			}
			kept = append(kept, a.Clone())
		}
		if len(kept) == 0 {
			logger.Info("topic has no articles after quality filter, omitting", "topic", name)
			continue
		}
		t := topic.Clone()
		t.News = kept
		out[name] = t
	}
	return out
}

func rejectArticle(a Article, lowValue []string) bool {
	if len(a.Sources) == 0 {
		return true
	}
	for _, src := range a.Sources {
		if !isLowValueDomain(Domain(src), lowValue) {
			return false
		}
	}
	return true
}

// isLowValueDomain matches the domain itself or any subdomain of a
// configured low-value entry.
func isLowValueDomain(domain string, lowValue []string) bool {
	for _, lv := range lowValue {
		if domain == lv || strings.HasSuffix(domain, "."+lv) {
			return true
		}
	}
	return false
}
