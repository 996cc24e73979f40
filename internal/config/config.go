package config

import (
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	ArticlesDir string
	IndexPath   string
	LogLevel    string
	LogFile     string
	Format      string // text|json
}

func Default() Config {
	return Config{
		ArticlesDir: "articles",
		IndexPath:   filepath.Join(DataDir(), "index.db"),
		LogLevel:    "info",
		Format:      "text",
	}
}

// DataDir returns the folio data directory, respecting XDG_DATA_HOME.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "folio")
}

// Validate checks the merged configuration before any command runs.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ArticlesDir, validation.Required),
		validation.Field(&c.IndexPath, validation.Required),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}
