package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfassina/folio/internal/config"
	"github.com/pfassina/folio/internal/index"
)

type Flags struct {
	LogLevel    string
	LogFile     string
	ConfigPath  string
	ArticlesDir string
	IndexPath   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// openIndex opens the configured index database, creating its directory.
func (f *Flags) openIndex() (*index.DB, error) {
	path := f.Config.IndexPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := index.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	return db, nil
}

// articlesRoot returns the absolute articles directory.
func (f *Flags) articlesRoot() (string, error) {
	return filepath.Abs(f.Config.ArticlesDir)
}

// relToRoot returns file relative to root in slash form, or false when
// file lies outside root.
func relToRoot(root, file string) (string, bool) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
