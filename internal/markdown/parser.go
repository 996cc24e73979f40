package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
)

// Parser wraps goldmark for article processing. A Parser holds no
// per-document state and may be shared between goroutines.
type Parser struct {
	md      goldmark.Markdown
	baseDir string
}

// NewParser returns a parser that derives primary series relative to
// baseDir. An empty baseDir treats article paths as already relative.
func NewParser(baseDir string) *Parser {
	return &Parser{
		md:      goldmark.New(),
		baseDir: baseDir,
	}
}

// Article is a parsed article file.
type Article struct {
	Path     string
	Name     string
	Title    string
	Metadata *Metadata
	Content  string
	Headings []Heading
}

// ParseArticle parses the article stored at relPath.
func (p *Parser) ParseArticle(relPath string, content []byte) *Article {
	parsed := Parse(string(content))

	article := &Article{
		Path:     relPath,
		Name:     strings.TrimSuffix(relPath, ".md"),
		Metadata: parsed.Metadata,
		Content:  parsed.Content,
		Headings: headingsFrom(p.md, []byte(parsed.Content)),
	}

	article.Title = Title(article.Headings)
	if article.Title == "" {
		article.Title = relPath
	}

	if article.Metadata != nil {
		if series, ok := SeriesFromPath(p.joinBase(relPath), p.baseDir); ok {
			article.Metadata.PrimarySeries = &series
		}
	}
	return article
}

func (p *Parser) joinBase(relPath string) string {
	if p.baseDir == "" {
		return relPath
	}
	return strings.TrimSuffix(p.baseDir, "/") + "/" + relPath
}
