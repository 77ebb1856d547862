package news

import (
	"reflect"
	"testing"
)

func TestValidGroupsNoiseSubstringMatch(t *testing.T) {
	declared := []string{"Recent Events", "Technology", "Recent Events & Politics"}
	got := ValidGroups(declared, []string{"recent events"})

	want := []string{"technology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidGroups = %v, want %v", got, want)
	}
}

func TestValidGroupsKeepsDeclaredOrder(t *testing.T) {
	declared := []string{"science", "technology", "science"}
	got := ValidGroups(declared, nil)

	want := []string{"science", "technology"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidGroups = %v, want %v", got, want)
	}
}

func TestResolveGroupsBuildsIndex(t *testing.T) {
	topics := TopicCollection{
		"AI": {
			Name:   "AI",
			Groups: []string{"technology", "recent events"},
			News: []Article{
				{Title: "Model release", PublishedDate: "2024-05-01"},
			},
		},
	}

	index := ResolveGroups(topics, []string{"recent events"})

	if len(index) != 1 {
		t.Fatalf("expected 1 group, got %d: %v", len(index), index)
	}
	articles := index["technology"]
	if len(articles) != 1 {
		t.Fatalf("expected 1 article in technology, got %d", len(articles))
	}
	if !reflect.DeepEqual(articles[0].Groups, []string{"technology"}) {
		t.Errorf("article groups = %v", articles[0].Groups)
	}
}

func TestResolveGroupsMergesCrossTopicMemberships(t *testing.T) {
	shared := Article{Title: "Breakthrough", PublishedDate: "2024-05-01", Sources: []string{"https://a.com"}}

	topics := TopicCollection{
		"AI": {
			Name:   "AI",
			Groups: []string{"technology", "science"},
			News:   []Article{shared},
		},
		"Physics": {
			Name:   "Physics",
			Groups: []string{"science"},
			News:   []Article{shared},
		},
	}

	index := ResolveGroups(topics, nil)

	science := index["science"]
	if len(science) != 1 {
		t.Fatalf("same (title, date) from two topics must be one row in science, got %d", len(science))
	}
	want := []string{"science", "technology"}
	if !reflect.DeepEqual(science[0].Groups, want) {
		t.Errorf("merged memberships = %v, want %v", science[0].Groups, want)
	}

	tech := index["technology"]
	if len(tech) != 1 || !reflect.DeepEqual(tech[0].Groups, want) {
		t.Errorf("row in technology must report the same memberships, got %v", tech)
	}
}

func TestResolveGroupsDistinctArticlesStayDistinct(t *testing.T) {
	topics := TopicCollection{
		"AI": {
			Name:   "AI",
			Groups: []string{"technology"},
			News: []Article{
				{Title: "Breakthrough", PublishedDate: "2024-05-01"},
				{Title: "Breakthrough", PublishedDate: "2024-05-02"},
			},
		},
	}

	index := ResolveGroups(topics, nil)
	if got := len(index["technology"]); got != 2 {
		t.Errorf("same title with different dates are different identities, got %d rows", got)
	}
}

func TestResolveGroupsAllNoiseTopicExcluded(t *testing.T) {
	topics := TopicCollection{
		"Misc": {
			Name:   "Misc",
			Groups: []string{"Recent Events", "Latest News"},
			News:   []Article{{Title: "Something", PublishedDate: "2024-05-01"}},
		},
	}

	index := ResolveGroups(topics, []string{"recent events", "latest news"})
	if len(index) != 0 {
		t.Errorf("topic with only noise groups must not contribute, got %v", index)
	}
}

func TestAnnotateGroupsStampsTopicArticles(t *testing.T) {
	topics := TopicCollection{
		"AI": {
			Name:   "AI",
			Groups: []string{"technology"},
			News:   []Article{{Title: "Model release", PublishedDate: "2024-05-01"}},
		},
	}
	index := ResolveGroups(topics, nil)

	annotated := AnnotateGroups(topics, index)
	got := annotated["AI"].News[0].Groups
	if !reflect.DeepEqual(got, []string{"technology"}) {
		t.Errorf("annotated groups = %v", got)
	}

	// input untouched
	if topics["AI"].News[0].Groups != nil {
		t.Errorf("input collection was mutated")
	}
}
