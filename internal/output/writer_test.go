package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadanand-singh/news-agent/internal/news"
)

func sampleDoc() news.Document {
	return news.Document{
		Topics: map[string]news.TopicOutput{
			"AI": {
				Groups: []string{"technology"},
				News: []news.Article{
					{Title: "Story", Summary: "sum", Sources: []string{"https://a.com"}, PublishedDate: "2024-05-01", Groups: []string{"technology"}},
				},
			},
		},
		Groups: map[string][]news.Article{
			"technology": {
				{Title: "Story", Summary: "sum", Sources: []string{"https://a.com"}, PublishedDate: "2024-05-01", Groups: []string{"technology"}},
			},
		},
	}
}

func TestWriterWritesSnapshotAndDest(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "news.yaml")

	w := New(filepath.Join(dir, "out"), dest)
	w.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	path, err := w.Write(sampleDoc())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "news_collections_20240501_120000.yaml" {
		t.Errorf("snapshot name = %s", filepath.Base(path))
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("dest file not written: %v", err)
	}

	var got news.Document
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(got.Topics) != 1 || len(got.Groups) != 1 {
		t.Errorf("round-tripped document shape wrong: %+v", got)
	}
	if got.Topics["AI"].News[0].Title != "Story" {
		t.Errorf("article lost in round trip")
	}
}

func TestWriterDeterministicBytes(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "")
	w.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	doc := sampleDoc()
	path1, err := w.Write(doc)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC) }
	path2, err := w.Write(doc)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	b1, _ := os.ReadFile(path1)
	b2, _ := os.ReadFile(path2)
	if string(b1) != string(b2) {
		t.Errorf("identical documents must serialize identically")
	}
}
