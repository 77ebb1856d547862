package news

import (
	"sort"
	"strings"
	"time"
)

// dateLayouts covers the formats the search providers actually emit.
// Providers are not ISO-8601-clean; anything unparseable counts as an
// invalid date and sorts after every valid one.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
	"2006/01/02",
}

// ParseDate attempts every known layout. ok is false for empty or
// unparseable strings.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByRecency orders articles newest first. The sort is stable on
// purpose: articles with invalid dates compare equal to each other and
// must keep their original relative order between runs. A valid date
// always sorts before an invalid one. The input slice is left untouched.
func SortByRecency(items []Article) []Article {
	out := make([]Article, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := ParseDate(out[i].PublishedDate)
		tj, jok := ParseDate(out[j].PublishedDate)
		switch {
		case iok && jok:
			return ti.After(tj)
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}
