package news

import (
	"reflect"
	"testing"
)

func titles(items []Article) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Title)
	}
	return out
}

func TestSortByRecencyDescendingWithInvalidLast(t *testing.T) {
	in := []Article{
		{Title: "march", PublishedDate: "2024-03-01"},
		{Title: "junk", PublishedDate: "not-a-date"},
		{Title: "may", PublishedDate: "2024-05-01"},
	}

	got := titles(SortByRecency(in))
	want := []string{"may", "march", "junk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted order = %v, want %v", got, want)
	}
}

func TestSortByRecencyStableInvalidTies(t *testing.T) {
	in := []Article{
		{Title: "B", PublishedDate: "???"},
		{Title: "A", PublishedDate: "also garbage"},
	}

	got := titles(SortByRecency(in))
	want := []string{"B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("invalid-date ties must keep input order, got %v", got)
	}
}

func TestSortByRecencyIdempotent(t *testing.T) {
	in := []Article{
		{Title: "c", PublishedDate: "nope"},
		{Title: "a", PublishedDate: "2024-05-01"},
		{Title: "d", PublishedDate: ""},
		{Title: "b", PublishedDate: "2024-01-01T10:00:00Z"},
	}

	once := SortByRecency(in)
	twice := SortByRecency(once)
	if !reflect.DeepEqual(titles(once), titles(twice)) {
		t.Errorf("sort not idempotent: %v vs %v", titles(once), titles(twice))
	}
}

func TestSortByRecencyDoesNotMutateInput(t *testing.T) {
	in := []Article{
		{Title: "old", PublishedDate: "2024-01-01"},
		{Title: "new", PublishedDate: "2024-05-01"},
	}
	_ = SortByRecency(in)
	if in[0].Title != "old" {
		t.Errorf("input slice reordered")
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2024-05-01", true},
		{"2024-05-01T12:30:00Z", true},
		{"2024-05-01T12:30:00", true},
		{"2024-05-01 12:30:00", true},
		{"Wed, 01 May 2024 12:30:00 +0200", true},
		{"May 1, 2024", true},
		{"January 1, 2024", true},
		{"01 May 2024", true},
		{"2024/05/01", true},
		{"", false},
		{"not-a-date", false},
		{"14 days ago", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.valid {
			t.Errorf("ParseDate(%q) valid=%v, want %v", tt.in, ok, tt.valid)
		}
	}
}
