package markdown

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Navigation is the prev/next pair an article page links to.
type Navigation struct {
	Series *string
	Prev   *string
	Next   *string
}

// Empty reports whether there is nothing to link to.
func (n Navigation) Empty() bool {
	return n.Prev == nil && n.Next == nil
}

// Navigation resolves which links to show. The first ArticleSeries entry
// wins over the legacy PrevArticle/NextArticle fields.
func (m *Metadata) Navigation() Navigation {
	if m == nil {
		return Navigation{}
	}
	if len(m.ArticleSeries) > 0 {
		first := m.ArticleSeries[0]
		name := first.Name
		return Navigation{Series: &name, Prev: first.Prev, Next: first.Next}
	}
	return Navigation{
		Series: m.PrimarySeries,
		Prev:   m.PrevArticle,
		Next:   m.NextArticle,
	}
}

// SeriesFromPath derives the primary series of a file from its folder
// relative to baseDir: "articles/rust/basics/intro.md" under "articles" is
// "rust/basics". Files directly under baseDir, or outside it, have none.
func SeriesFromPath(filePath, baseDir string) (string, bool) {
	parent := path.Dir(filepath.ToSlash(filePath))
	base := strings.TrimSuffix(filepath.ToSlash(baseDir), "/")

	rel, ok := strings.CutPrefix(parent, base)
	if !ok || (base != "" && rel != "" && rel[0] != '/') {
		return "", false
	}
	rel = strings.TrimLeft(rel, "/")
	if rel == "" || rel == "." {
		return "", false
	}
	return rel, true
}

// SeriesSummary is the parsed summary.md of a series folder.
type SeriesSummary struct {
	ShortSummary *string
	LongSummary  string
}

type seriesSummaryMetadata struct {
	ShortSummary *string `toml:"short_summary"`
}

// ParseSeriesSummary reads a series summary document. Only a document that
// starts with Delimiter carries TOML; a block that fails to decode just
// drops the short summary.
func ParseSeriesSummary(text string) SeriesSummary {
	if !strings.HasPrefix(text, Delimiter) {
		return SeriesSummary{LongSummary: text}
	}
	parts := strings.SplitN(text, Delimiter, 3)
	if len(parts) < 3 {
		return SeriesSummary{LongSummary: text}
	}

	summary := SeriesSummary{LongSummary: strings.TrimSpace(parts[2])}
	var meta seriesSummaryMetadata
	if _, err := toml.Decode(strings.TrimSpace(parts[1]), &meta); err == nil {
		summary.ShortSummary = meta.ShortSummary
	}
	return summary
}
