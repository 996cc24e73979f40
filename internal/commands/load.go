package commands

import (
	"fmt"

	"github.com/pfassina/folio/internal/config"
)

// LoadConfig builds the effective configuration: defaults, then the config
// file, then any global flags that were set.
func (f *Flags) LoadConfig() error {
	cfg := config.Default()

	path := f.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	if _, err := config.LoadFile(&cfg, path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	if f.ArticlesDir != "" {
		cfg.ArticlesDir = config.ExpandHome(f.ArticlesDir)
	}
	if f.IndexPath != "" {
		cfg.IndexPath = config.ExpandHome(f.IndexPath)
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.LogFile = config.ExpandHome(f.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	f.ConfigPath = path
	f.Config = &cfg
	return nil
}
