package search

import "strings"

// injected labels appended to every topic's search groups. The same
// labels appear in the default ignored-groups list, so they widen the
// search without leaking into the presentation taxonomy.
var injectedGroups = []string{"recent events", "recent developments", "latest news"}

// AugmentGroups widens a topic's declared groups for searching: regional
// topics also chase breaking news and politics, and every topic gets the
// generic recency labels.
func AugmentGroups(declared []string) []string {
	out := append([]string(nil), declared...)

	regional := false
	for _, g := range declared {
		switch strings.ToLower(strings.TrimSpace(g)) {
		case "us", "india", "world":
			regional = true
		}
	}
	if regional {
		out = append(out, "breaking news", "politics")
	}
	return append(out, injectedGroups...)
}

// DaysFilter picks the recency window for a topic from its group labels.
// Politics moves fast, science and health do not.
func DaysFilter(groups []string) int {
	has := func(want string) bool {
		for _, g := range groups {
			if strings.ToLower(strings.TrimSpace(g)) == want {
				return true
			}
		}
		return false
	}

	switch {
	case has("politics"):
		return 2
	case has("technology"):
		return 4
	case has("science"), has("health"):
		return 7
	default:
		return 2
	}
}

// Queries builds the search fan-out for a topic. A comma-separated topic
// is split into parts; each part is queried alone and combined with each
// group label, capped at max total queries.
func Queries(topic string, groups []string, max int) []string {
	if max <= 0 {
		max = 12
	}

	var parts []string
	for _, p := range strings.Split(topic, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(q string) bool {
		q = strings.Join(strings.Fields(q), " ")
		if q == "" {
			return true
		}
		if _, dup := seen[strings.ToLower(q)]; dup {
			return true
		}
		seen[strings.ToLower(q)] = struct{}{}
		out = append(out, q)
		return len(out) < max
	}

	for _, p := range parts {
		if !add(p) {
			return out
		}
	}
	for _, p := range parts {
		for _, g := range groups {
			if !add(p + " " + g) {
				return out
			}
		}
	}
	return out
}
