package gemini

import (
	"math"
	"reflect"
	"testing"
)

func TestParseMergeResponse(t *testing.T) {
	in := `TITLE: Merged headline
SUMMARY: First line of the summary.
It continues on a second line.
SOURCES: https://a.com/1, https://b.com/2
PUBLISHED_DATE: 2024-05-01`

	got, err := parseMergeResponse(in)
	if err != nil {
		t.Fatalf("parseMergeResponse: %v", err)
	}
	if got.Title != "Merged headline" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Summary != "First line of the summary. It continues on a second line." {
		t.Errorf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Sources, []string{"https://a.com/1", "https://b.com/2"}) {
		t.Errorf("sources = %v", got.Sources)
	}
	if got.PublishedDate != "2024-05-01" {
		t.Errorf("published date = %q", got.PublishedDate)
	}
}

func TestParseMergeResponseUnknownDate(t *testing.T) {
	in := "TITLE: T\nSUMMARY: S\nSOURCES: https://a.com\nPUBLISHED_DATE: Unknown"

	got, err := parseMergeResponse(in)
	if err != nil {
		t.Fatalf("parseMergeResponse: %v", err)
	}
	if got.PublishedDate != "" {
		t.Errorf("Unknown must map to empty date, got %q", got.PublishedDate)
	}
}

func TestParseMergeResponseGarbage(t *testing.T) {
	if _, err := parseMergeResponse("complete nonsense\nwithout labels"); err == nil {
		t.Fatalf("expected error for unlabeled response")
	}
}

func TestCosine(t *testing.T) {
	got, err := cosine([]float32{1, 0}, []float32{1, 0})
	if err != nil {
		t.Fatalf("cosine: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors should score 1, got %v", got)
	}

	got, err = cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("cosine: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors should score 0, got %v", got)
	}
}

func TestCosineErrors(t *testing.T) {
	if _, err := cosine([]float32{1}, []float32{1, 2}); err == nil {
		t.Errorf("expected dimension mismatch error")
	}
	if _, err := cosine([]float32{0, 0}, []float32{1, 1}); err == nil {
		t.Errorf("expected zero-norm error")
	}
	if _, err := cosine(nil, nil); err == nil {
		t.Errorf("expected error for empty vectors")
	}
}
