package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/catalog"
	"github.com/pfassina/folio/internal/config"
	"github.com/pfassina/folio/internal/index"
	"github.com/pfassina/folio/internal/markdown"
)

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

func newTestFlags(t *testing.T) *Flags {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ArticlesDir = filepath.Join(dir, "articles")
	cfg.IndexPath = filepath.Join(dir, "data", "index.db")
	if err := os.MkdirAll(cfg.ArticlesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return &Flags{ConfigPath: filepath.Join(dir, "config.toml"), Config: &cfg}
}

// runApp runs folio with fresh command state and returns its stdout.
func runApp(t *testing.T, flags *Flags, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.Command{Name: "folio", Writer: &buf, ErrWriter: &bytes.Buffer{}}
	if stdin != "" {
		app.Reader = strings.NewReader(stdin)
	}
	for _, r := range []registrar{
		NewParseCmd(flags),
		NewIndexCmd(flags),
		NewSearchCmd(flags),
		NewLsCmd(flags),
		NewSeriesCmd(flags),
		NewCatalogCmd(flags),
		NewNewCmd(flags),
		NewConfigCmd(flags),
	} {
		app = r.Register(app)
	}
	err := app.Run(context.Background(), append([]string{"folio"}, args...))
	return buf.String(), err
}

func writeArticle(t *testing.T, flags *Flags, rel, content string) string {
	t.Helper()
	path := filepath.Join(flags.Config.ArticlesDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const streamsArticle = `#####
date = "2025-02-01"
author = "Ada"
tags = ["rust", "async"]

[[article_series]]
name = "rust/async"
next = "rust/async/03-sinks"

[[references]]
title = "Tokio"
url = "https://tokio.rs"
#####

# Streams

## Polling
`

func TestParse_JSON(t *testing.T) {
	flags := newTestFlags(t)
	path := writeArticle(t, flags, "rust/async/02-streams.md", streamsArticle)

	out, err := runApp(t, flags, "", "parse", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Path       string             `json:"path"`
		Title      string             `json:"title"`
		Metadata   *markdown.Metadata `json:"metadata"`
		Navigation *struct {
			Series *string `json:"series"`
			Next   *string `json:"next"`
		} `json:"navigation"`
		Headings []markdown.Heading `json:"headings"`
		Content  string             `json:"content"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}

	if got.Path != "rust/async/02-streams.md" || got.Title != "Streams" {
		t.Errorf("path/title: %q %q", got.Path, got.Title)
	}
	if got.Metadata == nil || got.Metadata.PrimarySeries == nil || *got.Metadata.PrimarySeries != "rust/async" {
		t.Errorf("primary series: %+v", got.Metadata)
	}
	if got.Metadata == nil || len(got.Metadata.Tags) != 2 || !got.Metadata.ShowReferences {
		t.Errorf("metadata: %+v", got.Metadata)
	}
	if got.Navigation == nil || got.Navigation.Next == nil || *got.Navigation.Next != "rust/async/03-sinks" {
		t.Errorf("navigation: %+v", got.Navigation)
	}
	if got.Content != "# Streams\n\n## Polling" {
		t.Errorf("content: %q", got.Content)
	}
	if len(got.Headings) != 2 {
		t.Errorf("headings: %+v", got.Headings)
	}
}

func TestParse_TextFromStdin(t *testing.T) {
	flags := newTestFlags(t)

	out, err := runApp(t, flags, "# Plain\n\nbody", "parse", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Plain") || !strings.Contains(out, "no metadata") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParse_Strict(t *testing.T) {
	flags := newTestFlags(t)
	doc := "#####\n[[references]]\ntitle = \"no url\"\n#####\n# Broken"
	path := writeArticle(t, flags, "broken.md", doc)

	if _, err := runApp(t, flags, "", "parse", path); err != nil {
		t.Errorf("lenient parse failed: %v", err)
	}

	_, err := runApp(t, flags, "", "parse", "--strict", path)
	if !errors.Is(err, markdown.ErrMalformedMetadata) || !errors.Is(err, markdown.ErrMalformedRecord) {
		t.Errorf("strict parse: got %v", err)
	}
}

func TestParse_Args(t *testing.T) {
	flags := newTestFlags(t)
	if _, err := runApp(t, flags, "", "parse"); err == nil {
		t.Error("expected error without FILE")
	}
	if _, err := runApp(t, flags, "", "parse", filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeArticle(t, flags, "a.md", "# A")
	if _, err := runApp(t, flags, "", "parse", "--format", "yaml", path); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestIndexAndQuery(t *testing.T) {
	flags := newTestFlags(t)
	streams := writeArticle(t, flags, "rust/async/02-streams.md", streamsArticle)
	plain := writeArticle(t, flags, "plain.md", "# Plain\n\nno metadata here")
	writeArticle(t, flags, "rust/async/summary.md", "#####\nshort_summary = \"Async Rust\"\n#####\nFrom futures to streams.")

	out, err := runApp(t, flags, "", "index", streams, plain)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "indexed 2 file(s)") {
		t.Errorf("index output: %q", out)
	}

	out, err = runApp(t, flags, "", "ls", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var listed []index.ArticleSummary
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode ls: %v\n%s", err, out)
	}
	if len(listed) != 2 || listed[0].Path != "rust/async/02-streams.md" || listed[1].Path != "plain.md" {
		t.Errorf("ls: %+v", listed)
	}

	out, err = runApp(t, flags, "", "ls", "--tag", "async")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Streams") || strings.Contains(out, "plain.md") {
		t.Errorf("ls --tag:\n%s", out)
	}

	out, err = runApp(t, flags, "", "search", "polling")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rust/async/02-streams.md") {
		t.Errorf("search:\n%s", out)
	}

	out, err = runApp(t, flags, "", "search", "--headings", "Poll")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "## Polling") {
		t.Errorf("search --headings:\n%s", out)
	}

	out, err = runApp(t, flags, "", "series")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rust/async") {
		t.Errorf("series:\n%s", out)
	}

	out, err = runApp(t, flags, "", "series", "rust/async")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Async Rust") || !strings.Contains(out, "From futures to streams.") || !strings.Contains(out, "Streams") {
		t.Errorf("series rust/async:\n%s", out)
	}

	out, err = runApp(t, flags, "", "index", "--remove", plain)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "removed 1 file(s)") {
		t.Errorf("remove output: %q", out)
	}
}

func TestIndex_Failures(t *testing.T) {
	flags := newTestFlags(t)
	if _, err := runApp(t, flags, "", "index"); err == nil {
		t.Error("expected error without files")
	}
	if _, err := runApp(t, flags, "", "index", filepath.Join(flags.Config.ArticlesDir, "missing.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCatalog(t *testing.T) {
	flags := newTestFlags(t)
	files := []string{
		writeArticle(t, flags, "go/02-channels.md", "#####\ndate = \"2024-05-01\"\n#####\n# Channels"),
		writeArticle(t, flags, "go/01-basics.md", "#####\ndate = \"2024-04-01\"\n#####\n# Basics"),
		writeArticle(t, flags, "about.md", "# About"),
	}
	writeArticle(t, flags, "go/summary.md", "#####\nshort_summary = \"Learn Go\"\n#####\nAll of it.")

	out, err := runApp(t, flags, "", append([]string{"catalog"}, files...)...)
	if err != nil {
		t.Fatal(err)
	}
	channels, basics, about := strings.Index(out, "Channels"), strings.Index(out, "Basics"), strings.Index(out, "About")
	if channels < 0 || basics < channels || about < basics {
		t.Errorf("catalog order:\n%s", out)
	}

	out, err = runApp(t, flags, "", append([]string{"catalog", "--group"}, files...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "go") || !strings.Contains(out, "2") {
		t.Errorf("catalog --group:\n%s", out)
	}

	out, err = runApp(t, flags, "", append([]string{"catalog", "--series", "go"}, files...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Learn Go") || strings.Index(out, "Basics") > strings.Index(out, "Channels") {
		t.Errorf("catalog --series:\n%s", out)
	}

	_, err = runApp(t, flags, "", append([]string{"catalog", "--series", "python"}, files...)...)
	if !errors.Is(err, catalog.ErrSeriesNotFound) {
		t.Errorf("unknown series: got %v", err)
	}
}

func TestNew(t *testing.T) {
	flags := newTestFlags(t)

	out, err := runApp(t, flags, "", "new", "--author", "Ada", "--tag", "go", "--tag", "cli", "--series", "go", "Hello", "World")
	if err != nil {
		t.Fatal(err)
	}
	path := strings.TrimSpace(out)
	if want := filepath.Join(flags.Config.ArticlesDir, "go", "hello-world.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := markdown.Inspect(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Metadata.Author == nil || *parsed.Metadata.Author != "Ada" || len(parsed.Metadata.Tags) != 2 {
		t.Errorf("metadata: %+v", parsed.Metadata)
	}
	if parsed.Content != "# Hello World" {
		t.Errorf("content: %q", parsed.Content)
	}

	if _, err := runApp(t, flags, "", "new", "--series", "go", "Hello", "World"); err == nil {
		t.Error("expected error when the article exists")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	flags := newTestFlags(t)
	flags.Config.Format = "json"

	out, err := runApp(t, flags, "", "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != flags.ConfigPath {
		t.Errorf("init output: %q", out)
	}
	if _, err := runApp(t, flags, "", "config", "init"); err == nil {
		t.Error("expected error for existing config")
	}
	if _, err := runApp(t, flags, "", "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	loaded := config.Default()
	if _, err := config.LoadFile(&loaded, flags.ConfigPath); err != nil {
		t.Fatal(err)
	}
	if loaded.Format != "json" || loaded.ArticlesDir != flags.Config.ArticlesDir {
		t.Errorf("saved config: %+v", loaded)
	}

	out, err = runApp(t, flags, "", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "format       = json") {
		t.Errorf("show output:\n%s", out)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("articles_dir = \"/srv/blog\"\nformat = \"json\"\nlog_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := &Flags{ConfigPath: path, LogLevel: "debug"}
	if err := flags.LoadConfig(); err != nil {
		t.Fatal(err)
	}
	cfg := flags.Config
	if cfg.ArticlesDir != "/srv/blog" || cfg.Format != "json" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("flag should override file: LogLevel = %q", cfg.LogLevel)
	}
	if cfg.IndexPath != filepath.Join(dir, "folio", "index.db") {
		t.Errorf("IndexPath = %q", cfg.IndexPath)
	}

	if err := os.WriteFile(path, []byte("format = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&Flags{ConfigPath: path}).LoadConfig(); err == nil {
		t.Error("expected validation error")
	}
}
