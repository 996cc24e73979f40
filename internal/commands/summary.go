package commands

import (
	"os"
	"path/filepath"

	"github.com/pfassina/folio/internal/markdown"
)

// loadSeriesSummary reads summary.md from the folder of series name.
func loadSeriesSummary(articlesDir, name string) (markdown.SeriesSummary, bool) {
	data, err := os.ReadFile(filepath.Join(articlesDir, filepath.FromSlash(name), "summary.md"))
	if err != nil {
		return markdown.SeriesSummary{}, false
	}
	return markdown.ParseSeriesSummary(string(data)), true
}
