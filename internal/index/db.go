package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    slug TEXT NOT NULL DEFAULT '',
    date TEXT,
    author TEXT,
    summary TEXT,
    category TEXT,
    reading_time TEXT,
    primary_series TEXT,
    has_metadata INTEGER NOT NULL DEFAULT 0,
    show_references INTEGER NOT NULL DEFAULT 1,
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
    title, content, tags, headings,
    tokenize='porter unicode61 remove_diacritics 2'
);

CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS article_tags (
    article_id INTEGER REFERENCES articles(id) ON DELETE CASCADE,
    tag_id INTEGER REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (article_id, tag_id)
);

CREATE TABLE IF NOT EXISTS series_members (
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    series TEXT NOT NULL,
    PRIMARY KEY (article_id, series)
);

CREATE TABLE IF NOT EXISTS series_links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    series TEXT NOT NULL,
    prev TEXT,
    next TEXT
);

CREATE TABLE IF NOT EXISTS article_references (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS headings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    level INTEGER NOT NULL,
    text TEXT NOT NULL,
    line INTEGER NOT NULL
);
`

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	return open(path + "?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	return open(":memory:?_pragma=foreign_keys(on)")
}

func open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// ArticleRow is the flattened article record stored in the articles table.
type ArticleRow struct {
	Path           string
	Name           string
	Title          string
	Slug           string
	Date           *string
	Author         *string
	Summary        *string
	Category       *string
	ReadingTime    *string
	PrimarySeries  *string
	HasMetadata    bool
	ShowReferences bool
	ModTime        int64
	Size           int64
	Hash           string
}

// UpsertArticle inserts or updates an article and returns its ID.
func (db *DB) UpsertArticle(a ArticleRow) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO articles (path, name, title, slug, date, author, summary, category,
			reading_time, primary_series, has_metadata, show_references, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			title = excluded.title,
			slug = excluded.slug,
			date = excluded.date,
			author = excluded.author,
			summary = excluded.summary,
			category = excluded.category,
			reading_time = excluded.reading_time,
			primary_series = excluded.primary_series,
			has_metadata = excluded.has_metadata,
			show_references = excluded.show_references,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, a.Path, a.Name, a.Title, a.Slug, nullable(a.Date), nullable(a.Author), nullable(a.Summary),
		nullable(a.Category), nullable(a.ReadingTime), nullable(a.PrimarySeries),
		a.HasMetadata, a.ShowReferences, a.ModTime, a.Size, a.Hash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.conn.QueryRow("SELECT id FROM articles WHERE path = ?", a.Path).Scan(&id)
	return id, err
}

// UpdateFTS replaces the full-text entry for an article.
func (db *DB) UpdateFTS(articleID int64, title, content, tags, headings string) error {
	if _, err := db.conn.Exec("DELETE FROM articles_fts WHERE rowid = ?", articleID); err != nil {
		return err
	}
	_, err := db.conn.Exec("INSERT INTO articles_fts(rowid, title, content, tags, headings) VALUES(?, ?, ?, ?, ?)",
		articleID, title, content, tags, headings)
	return err
}

// UpsertTag ensures a tag exists and returns its ID.
func (db *DB) UpsertTag(name string) (int64, error) {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.conn.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	return id, err
}

// LinkArticleTag associates a tag with an article.
func (db *DB) LinkArticleTag(articleID, tagID int64) error {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)", articleID, tagID)
	return err
}

// AddSeriesMember records that an article belongs to a series.
func (db *DB) AddSeriesMember(articleID int64, series string) error {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO series_members (article_id, series) VALUES (?, ?)", articleID, series)
	return err
}

// InsertSeriesLink adds an [[article_series]] entry.
func (db *DB) InsertSeriesLink(articleID int64, position int, series string, prev, next *string) error {
	_, err := db.conn.Exec(`
		INSERT INTO series_links (article_id, position, series, prev, next)
		VALUES (?, ?, ?, ?, ?)
	`, articleID, position, series, nullable(prev), nullable(next))
	return err
}

// InsertReference adds a [[references]] entry.
func (db *DB) InsertReference(articleID int64, position int, title, url string, description *string) error {
	_, err := db.conn.Exec(`
		INSERT INTO article_references (article_id, position, title, url, description)
		VALUES (?, ?, ?, ?, ?)
	`, articleID, position, title, url, nullable(description))
	return err
}

// InsertHeading adds a heading record.
func (db *DB) InsertHeading(articleID int64, level int, text string, line int) error {
	_, err := db.conn.Exec("INSERT INTO headings (article_id, level, text, line) VALUES (?, ?, ?, ?)",
		articleID, level, text, line)
	return err
}

// ClearDerived removes every row derived from an article's content so it
// can be rebuilt.
func (db *DB) ClearDerived(articleID int64) error {
	for _, table := range []string{"article_tags", "series_members", "series_links", "article_references", "headings"} {
		if _, err := db.conn.Exec("DELETE FROM "+table+" WHERE article_id = ?", articleID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// GetArticleHash returns the stored hash for an article path.
func (db *DB) GetArticleHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM articles WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteArticle removes an article and all its related data.
func (db *DB) DeleteArticle(path string) error {
	var id int64
	err := db.conn.QueryRow("SELECT id FROM articles WHERE path = ?", path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := db.conn.Exec("DELETE FROM articles_fts WHERE rowid = ?", id); err != nil {
		return err
	}
	_, err = db.conn.Exec("DELETE FROM articles WHERE id = ?", id)
	return err
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func scanNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
