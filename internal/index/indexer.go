package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfassina/folio/internal/catalog"
	"github.com/pfassina/folio/internal/markdown"
)

// Indexer feeds parsed articles into the database.
type Indexer struct {
	db     *DB
	parser *markdown.Parser
	root   string
}

// NewIndexer returns an indexer for articles stored under root. Primary
// series are derived from the folders below root.
func NewIndexer(db *DB, root string) *Indexer {
	return &Indexer{
		db:     db,
		parser: markdown.NewParser(""),
		root:   root,
	}
}

// IndexFile indexes a single markdown file.
func (idx *Indexer) IndexFile(absPath string) error {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", absPath, err)
	}

	return idx.IndexDocument(idx.relPath(absPath), content, info.ModTime())
}

// IndexDocument indexes content as the article at relPath. Unchanged
// content is skipped.
func (idx *Indexer) IndexDocument(relPath string, content []byte, modTime time.Time) error {
	relPath = filepath.ToSlash(relPath)

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existingHash, _ := idx.db.GetArticleHash(relPath)
	if hash == existingHash {
		return nil
	}

	article := idx.parser.ParseArticle(relPath, content)

	row := ArticleRow{
		Path:           relPath,
		Name:           article.Name,
		Title:          article.Title,
		Slug:           catalog.Slugify(article.Name),
		ShowReferences: true,
		ModTime:        modTime.Unix(),
		Size:           int64(len(content)),
		Hash:           hash,
	}
	var tags []string
	if meta := article.Metadata; meta != nil {
		row.HasMetadata = true
		row.Date = meta.Date
		row.Author = meta.Author
		row.Summary = meta.Summary
		row.Category = meta.Category
		row.ReadingTime = meta.ReadingTime
		row.PrimarySeries = meta.PrimarySeries
		row.ShowReferences = meta.ShowReferences
		tags = meta.Tags
	}

	articleID, err := idx.db.UpsertArticle(row)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}

	headingTexts := make([]string, len(article.Headings))
	for i, h := range article.Headings {
		headingTexts[i] = h.Text
	}
	if err := idx.db.UpdateFTS(articleID, article.Title, article.Content, strings.Join(tags, " "), strings.Join(headingTexts, " ")); err != nil {
		return fmt.Errorf("update FTS: %w", err)
	}

	if err := idx.db.ClearDerived(articleID); err != nil {
		return err
	}

	for _, h := range article.Headings {
		if err := idx.db.InsertHeading(articleID, h.Level, h.Text, h.Line); err != nil {
			return fmt.Errorf("insert heading %q: %w", h.Text, err)
		}
	}

	if article.Metadata == nil {
		return nil
	}
	return idx.indexMetadata(articleID, article.Metadata)
}

func (idx *Indexer) indexMetadata(articleID int64, meta *markdown.Metadata) error {
	for _, tag := range meta.Tags {
		tagID, err := idx.db.UpsertTag(tag)
		if err != nil {
			return fmt.Errorf("upsert tag %q: %w", tag, err)
		}
		if err := idx.db.LinkArticleTag(articleID, tagID); err != nil {
			return fmt.Errorf("link article tag %q: %w", tag, err)
		}
	}

	members := meta.Series
	if meta.PrimarySeries != nil {
		members = append([]string{*meta.PrimarySeries}, members...)
	}
	for _, name := range members {
		if err := idx.db.AddSeriesMember(articleID, name); err != nil {
			return fmt.Errorf("add series member %q: %w", name, err)
		}
	}

	for i, link := range meta.ArticleSeries {
		if err := idx.db.InsertSeriesLink(articleID, i, link.Name, link.Prev, link.Next); err != nil {
			return fmt.Errorf("insert series link %q: %w", link.Name, err)
		}
	}

	for i, ref := range meta.References {
		if err := idx.db.InsertReference(articleID, i, ref.Title, ref.URL, ref.Description); err != nil {
			return fmt.Errorf("insert reference %q: %w", ref.Title, err)
		}
	}
	return nil
}

// RemoveFile removes a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	return idx.db.DeleteArticle(idx.relPath(absPath))
}

func (idx *Indexer) relPath(absPath string) string {
	relPath, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		relPath = absPath
	}
	return filepath.ToSlash(relPath)
}
