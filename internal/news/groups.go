package news

import (
	"sort"
	"strings"

	"github.com/sadanand-singh/news-agent/internal/logger"
)

// ValidGroups returns the topic's declared groups minus every label whose
// normalized text contains a noise substring. Matching is case-insensitive
// and substring-based, so a noise entry "recent events" also suppresses
// "Recent Events & Politics". Order of the declared list is preserved and
// repeats are dropped.
func ValidGroups(declared, noiseLabels []string) []string {
	noise := make([]string, 0, len(noiseLabels))
	for _, n := range noiseLabels {
		n = NormalizeGroup(n)
		if n != "" {
			noise = append(noise, n)
		}
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, g := range declared {
		norm := NormalizeGroup(g)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		if containsNoise(norm, noise) {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func containsNoise(group string, noise []string) bool {
	for _, n := range noise {
		if strings.Contains(group, n) {
			return true
		}
	}
	return false
}

// contribution is one topic's share of the group index: a single article
// under its exact-match identity, tagged with the topic's valid groups.
type contribution struct {
	key     string
	article Article
	groups  []string
}

// topicContribution computes a topic's contributions independently of any
// other topic, so this phase is safe to run in parallel.
func topicContribution(t Topic, noiseLabels []string) []contribution {
	valid := ValidGroups(t.Groups, noiseLabels)
	if len(valid) == 0 {
		logger.Debug("topic contributes no valid groups", "topic", t.Name)
		return nil
	}
	out := make([]contribution, 0, len(t.News))
	for _, a := range t.News {
		out = append(out, contribution{
			key:     a.identityKey(),
			article: a.Clone(),
			groups:  valid,
		})
	}
	return out
}

// ResolveGroups builds the group index over the whole collection. Topics
// are merged in sorted name order in a single pass, so two topics feeding
// the same group can never race and repeated runs produce identical
// output. An article reached from several topics keeps one row per group
// with the union of every membership it earned.
func ResolveGroups(topics TopicCollection, noiseLabels []string) GroupIndex {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	type entry struct {
		article Article
		groups  map[string]struct{}
		order   int
	}
	entries := make(map[string]*entry)
	var keys []string

	for _, name := range names {
		for _, c := range topicContribution(topics[name], noiseLabels) {
			e, ok := entries[c.key]
			if !ok {
				e = &entry{article: c.article, groups: make(map[string]struct{}), order: len(keys)}
				entries[c.key] = e
				keys = append(keys, c.key)
			}
			for _, g := range c.groups {
				e.groups[g] = struct{}{}
			}
		}
	}

	index := make(GroupIndex)
	for _, key := range keys {
		e := entries[key]
		memberships := make([]string, 0, len(e.groups))
		for g := range e.groups {
			memberships = append(memberships, g)
		}
		sort.Strings(memberships)

		for _, g := range memberships {
			a := e.article.Clone()
			a.Groups = append([]string(nil), memberships...)
			index[g] = append(index[g], a)
		}
	}
	return index
}

// AnnotateGroups stamps every article in the collection with the full
// membership set it earned in the index, keyed by exact identity, so the
// topic view and the group view report the same groups for the same item.
func AnnotateGroups(topics TopicCollection, index GroupIndex) TopicCollection {
	memberships := make(map[string][]string)
	for _, articles := range index {
		for _, a := range articles {
			memberships[a.identityKey()] = a.Groups
		}
	}

	out := make(TopicCollection, len(topics))
	for name, topic := range topics {
		t := topic.Clone()
		for i := range t.News {
			if groups, ok := memberships[t.News[i].identityKey()]; ok {
				t.News[i].Groups = append([]string(nil), groups...)
			}
		}
		out[name] = t
	}
	return out
}
