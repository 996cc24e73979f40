package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	ArticlesDir *string `toml:"articles_dir"`
	IndexPath   *string `toml:"index_path"`
	LogLevel    *string `toml:"log_level"`
	LogFile     *string `toml:"log_file"`
	Format      *string `toml:"format"`
}

// ConfigDir returns the folio config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "folio")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads the config file at path and merges non-nil fields into
// cfg. Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.ArticlesDir != nil {
		cfg.ArticlesDir = ExpandHome(*fc.ArticlesDir)
	}
	if fc.IndexPath != nil {
		cfg.IndexPath = ExpandHome(*fc.IndexPath)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		cfg.LogFile = ExpandHome(*fc.LogFile)
	}
	if fc.Format != nil {
		cfg.Format = *fc.Format
	}

	return true, nil
}

// SaveFile writes cfg to path, storing paths under the home directory
// with a leading ~.
func SaveFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	articles := collapseHome(cfg.ArticlesDir)
	index := collapseHome(cfg.IndexPath)
	fc := fileConfig{
		ArticlesDir: &articles,
		IndexPath:   &index,
		LogLevel:    &cfg.LogLevel,
		Format:      &cfg.Format,
	}
	if cfg.LogFile != "" {
		logFile := collapseHome(cfg.LogFile)
		fc.LogFile = &logFile
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

func collapseHome(path string) string {
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
