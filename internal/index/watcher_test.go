package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcher_ReindexesChangedArticle(t *testing.T) {
	root := t.TempDir()
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	idx := NewIndexer(db, root)

	changed := make(chan string, 8)
	w, err := NewWatcher(idx, []string{root}, zerolog.Nop(), func(path string) { changed <- path })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	path := filepath.Join(root, "live.md")
	if err := os.WriteFile(path, []byte("#####\ntags = [\"live\"]\n#####\n# Live"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("changed path: got %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-index")
	}

	if tagged, _ := db.ArticlesByTag("live"); len(tagged) != 1 {
		t.Errorf("expected indexed article, got %+v", tagged)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, idx := newTestIndexer(t)
	if _, err := NewWatcher(idx, []string{filepath.Join(t.TempDir(), "nope")}, zerolog.Nop(), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
