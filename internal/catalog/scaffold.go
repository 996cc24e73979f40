package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pfassina/folio/internal/markdown"
)

// Draft describes a new article to scaffold.
type Draft struct {
	Title    string
	Author   string
	Category string
	Tags     []string
	Series   string // optional [[article_series]] entry
	Date     time.Time
}

type draftBlock struct {
	Date          string             `toml:"date"`
	Author        string             `toml:"author,omitempty"`
	Category      string             `toml:"category,omitempty"`
	Tags          []string           `toml:"tags,omitempty"`
	ArticleSeries []draftSeriesEntry `toml:"article_series,omitempty"`
}

type draftSeriesEntry struct {
	Name string `toml:"name"`
}

// Scaffold renders the initial document for d: a front-matter block followed
// by the title heading.
func Scaffold(d Draft) (string, error) {
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	block := draftBlock{
		Date:     d.Date.Format("2006-01-02"),
		Author:   d.Author,
		Category: d.Category,
		Tags:     d.Tags,
	}
	if d.Series != "" {
		block.ArticleSeries = []draftSeriesEntry{{Name: d.Series}}
	}

	var buf bytes.Buffer
	buf.WriteString(markdown.Delimiter + "\n")
	if err := toml.NewEncoder(&buf).Encode(block); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString(markdown.Delimiter + "\n\n")
	fmt.Fprintf(&buf, "# %s\n", d.Title)
	return buf.String(), nil
}

// DraftPath returns the file name for d inside dir.
func DraftPath(dir string, d Draft) string {
	return filepath.Join(dir, Slugify(d.Title)+".md")
}

// WriteDraft scaffolds d and writes it to path. Existing files are never
// overwritten.
func WriteDraft(path string, d Draft) error {
	content, err := Scaffold(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}
	return nil
}
