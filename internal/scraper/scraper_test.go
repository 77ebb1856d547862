package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<html><head>
<meta property="og:description" content="meta fallback text">
</head><body>
<article>
<p>This is the first paragraph of the article body, long enough to count.</p>
<p>And here is the second paragraph with more than forty characters in it.</p>
<p>short</p>
</article>
</body></html>`

func TestExtractTextUsesArticleParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	s := New(5*time.Second, 2)
	got, err := s.ExtractText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(got, "first paragraph") || !strings.Contains(got, "second paragraph") {
		t.Errorf("extracted text = %q", got)
	}
	if strings.Contains(got, "short") {
		t.Errorf("tiny paragraphs must be skipped, got %q", got)
	}
}

func TestExtractTextMetaFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:description" content="meta fallback text"></head><body><p>x</p></body></html>`))
	}))
	defer srv.Close()

	s := New(5*time.Second, 2)
	got, err := s.ExtractText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "meta fallback text" {
		t.Errorf("expected og:description fallback, got %q", got)
	}
}

func TestExtractTextHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := New(5*time.Second, 2)
	if _, err := s.ExtractText(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error on 404")
	}
}

func TestExtractAllSkipsFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	s := New(5*time.Second, 2)
	got := s.ExtractAll(context.Background(), []string{good.URL, bad.URL})

	if len(got) != 1 {
		t.Fatalf("expected only the good URL, got %d results", len(got))
	}
	if _, ok := got[good.URL]; !ok {
		t.Errorf("good URL missing from results")
	}
}
