package news

import "testing"

func TestFilterQualityDropsLowValueOnlyArticles(t *testing.T) {
	topics := TopicCollection{
		"Tech": {
			Name:   "Tech",
			Groups: []string{"technology"},
			News: []Article{
				{Title: "good", Sources: []string{"https://arstechnica.com/x", "https://medium.com/y"}},
				{Title: "aggregator only", Sources: []string{"https://medium.com/x"}},
				{Title: "no sources"},
			},
		},
	}

	out := FilterQuality(topics, []string{"medium.com"})

	tech, ok := out["Tech"]
	if !ok {
		t.Fatalf("topic with surviving articles must remain")
	}
	if len(tech.News) != 1 || tech.News[0].Title != "good" {
		t.Fatalf("expected only the article with a credible source, got %+v", tech.News)
	}
}

func TestFilterQualityPrunesEmptyTopics(t *testing.T) {
	topics := TopicCollection{
		"Junk": {
			Name: "Junk",
			News: []Article{
				{Title: "only medium", Sources: []string{"https://medium.com/x"}},
			},
		},
	}

	out := FilterQuality(topics, []string{"medium.com"})
	if _, ok := out["Junk"]; ok {
		t.Errorf("topic with zero surviving articles must be omitted")
	}
}

func TestFilterQualityMatchesSubdomains(t *testing.T) {
	topics := TopicCollection{
		"T": {
			Name: "T",
			News: []Article{
				{Title: "sub", Sources: []string{"https://blog.medium.com/x"}},
			},
		},
	}

	out := FilterQuality(topics, []string{"medium.com"})
	if len(out) != 0 {
		t.Errorf("subdomain of a low-value domain must also be rejected")
	}
}

func TestFilterQualityDoesNotMutateInput(t *testing.T) {
	topics := TopicCollection{
		"T": {
			Name: "T",
			News: []Article{
				{Title: "keep", Sources: []string{"https://example.com/a"}},
				{Title: "drop", Sources: []string{"https://medium.com/b"}},
			},
		},
	}

	_ = FilterQuality(topics, []string{"medium.com"})

	if len(topics["T"].News) != 2 {
		t.Errorf("input collection was mutated, got %d articles", len(topics["T"].News))
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/path", "example.com"},
		{"http://sub.example.co.uk/a?b=c", "sub.example.co.uk"},
		{"example.com/plain", "example.com"},
		{"https://example.com:8080/x", "example.com"},
		{"", "unknown"},
		{"://bad", "unknown"},
	}
	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
