package index

import (
	"database/sql"

	"github.com/pfassina/folio/internal/markdown"
)

// SearchResult represents a single search result.
type SearchResult struct {
	ID    int64   `json:"id"`
	Path  string  `json:"path"`
	Title string  `json:"title"`
	Rank  float64 `json:"rank"`
}

// ArticleSummary is the listing view of an indexed article.
type ArticleSummary struct {
	ID            int64   `json:"id"`
	Path          string  `json:"path"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Date          *string `json:"date,omitempty"`
	PrimarySeries *string `json:"primary_series,omitempty"`
}

// SeriesCount is a series name with the number of member articles.
type SeriesCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// HeadingResult represents a heading in an article.
type HeadingResult struct {
	ArticleID   int64  `json:"article_id"`
	ArticlePath string `json:"article_path"`
	Level       int    `json:"level"`
	Text        string `json:"text"`
	Line        int    `json:"line"`
}

// collect drains rows through scan, closing rows on every path.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	var results []T
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Search performs a full-text search across articles.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT a.id, a.path, a.title, rank
		FROM articles_fts
		JOIN articles a ON a.id = articles_fts.rowid
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (SearchResult, error) {
		var r SearchResult
		err := rows.Scan(&r.ID, &r.Path, &r.Title, &r.Rank)
		return r, err
	})
}

const summaryColumns = `a.id, a.path, a.name, a.title, a.date, a.primary_series`

func scanSummary(rows *sql.Rows) (ArticleSummary, error) {
	var s ArticleSummary
	var date, series sql.NullString
	if err := rows.Scan(&s.ID, &s.Path, &s.Name, &s.Title, &date, &series); err != nil {
		return s, err
	}
	s.Date = scanNullable(date)
	s.PrimarySeries = scanNullable(series)
	return s, nil
}

// Recent lists articles newest first: articles with metadata before those
// without, undated ones after dated ones, then by name.
func (db *DB) Recent(limit int) ([]ArticleSummary, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.conn.Query(`
		SELECT `+summaryColumns+`
		FROM articles a
		ORDER BY a.has_metadata DESC, a.date IS NULL, a.date DESC, a.name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSummary)
}

// ArticlesByTag lists the articles carrying tag, sorted by name.
func (db *DB) ArticlesByTag(tag string) ([]ArticleSummary, error) {
	rows, err := db.conn.Query(`
		SELECT `+summaryColumns+`
		FROM articles a
		JOIN article_tags x ON x.article_id = a.id
		JOIN tags t ON t.id = x.tag_id
		WHERE t.name = ?
		ORDER BY a.name
	`, tag)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSummary)
}

// ArticlesInSeries lists the members of a series, sorted by name.
func (db *DB) ArticlesInSeries(name string) ([]ArticleSummary, error) {
	rows, err := db.conn.Query(`
		SELECT `+summaryColumns+`
		FROM articles a
		JOIN series_members m ON m.article_id = a.id
		WHERE m.series = ?
		ORDER BY a.name
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSummary)
}

// SeriesNames lists every series with its member count, sorted by name.
func (db *DB) SeriesNames() ([]SeriesCount, error) {
	rows, err := db.conn.Query(`
		SELECT series, COUNT(*)
		FROM series_members
		GROUP BY series
		ORDER BY series
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (SeriesCount, error) {
		var c SeriesCount
		err := rows.Scan(&c.Name, &c.Count)
		return c, err
	})
}

// References returns the references of the article at path, in order.
func (db *DB) References(path string) ([]markdown.Reference, error) {
	rows, err := db.conn.Query(`
		SELECT r.title, r.url, r.description
		FROM article_references r
		JOIN articles a ON a.id = r.article_id
		WHERE a.path = ?
		ORDER BY r.position
	`, path)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (markdown.Reference, error) {
		var r markdown.Reference
		var desc sql.NullString
		if err := rows.Scan(&r.Title, &r.URL, &desc); err != nil {
			return r, err
		}
		r.Description = scanNullable(desc)
		return r, nil
	})
}

// SeriesLinks returns the [[article_series]] entries of the article at path.
func (db *DB) SeriesLinks(path string) ([]markdown.SeriesLink, error) {
	rows, err := db.conn.Query(`
		SELECT l.series, l.prev, l.next
		FROM series_links l
		JOIN articles a ON a.id = l.article_id
		WHERE a.path = ?
		ORDER BY l.position
	`, path)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (markdown.SeriesLink, error) {
		var l markdown.SeriesLink
		var prev, next sql.NullString
		if err := rows.Scan(&l.Name, &prev, &next); err != nil {
			return l, err
		}
		l.Prev = scanNullable(prev)
		l.Next = scanNullable(next)
		return l, nil
	})
}

// SearchHeadings searches headings across all articles.
func (db *DB) SearchHeadings(query string, limit int) ([]HeadingResult, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT h.article_id, a.path, h.level, h.text, h.line
		FROM headings h
		JOIN articles a ON a.id = h.article_id
		WHERE h.text LIKE ?
		ORDER BY a.path, h.line
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (HeadingResult, error) {
		var r HeadingResult
		err := rows.Scan(&r.ArticleID, &r.ArticlePath, &r.Level, &r.Text, &r.Line)
		return r, err
	})
}
