// Package output serializes the final document for the static site
// renderer.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sadanand-singh/news-agent/internal/logger"
	"github.com/sadanand-singh/news-agent/internal/news"
)

// Writer emits the document as YAML: one timestamped snapshot in the
// output directory, plus an optional fixed destination file the site
// renderer watches.
type Writer struct {
	OutputDir string
	DestFile  string

	// now is swappable for tests.
	now func() time.Time
}

func New(outputDir, destFile string) *Writer {
	return &Writer{OutputDir: outputDir, DestFile: destFile, now: time.Now}
}

// Write serializes the document and returns the snapshot path.
func (w *Writer) Write(doc news.Document) (string, error) {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	now := time.Now
	if w.now != nil {
		now = w.now
	}
	path := filepath.Join(w.OutputDir, fmt.Sprintf("news_collections_%s.yaml", now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote news collection", "path", path, "topics", len(doc.Topics), "groups", len(doc.Groups))

	if w.DestFile != "" {
		if err := os.WriteFile(w.DestFile, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", w.DestFile, err)
		}
		logger.Info("wrote news collection", "path", w.DestFile)
	}
	return path, nil
}
