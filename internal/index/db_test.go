package index

import (
	"testing"
	"time"
)

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, err := db.UpsertArticle(ArticleRow{Path: "test.md", Name: "test", Title: "Test", Hash: "abc123", ModTime: 1000, Size: 42})
	if err != nil {
		t.Fatal(err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	if err := db.UpdateFTS(id, "Test", "Hello world content", "tag1 tag2", "Heading 1"); err != nil {
		t.Fatal(err)
	}

	results, err := db.Search("world", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "test.md" {
		t.Errorf("path: got %q, want %q", results[0].Path, "test.md")
	}

	// Re-upserting keeps the id and replaces the FTS row.
	again, err := db.UpsertArticle(ArticleRow{Path: "test.md", Name: "test", Title: "Renamed", Hash: "def", ModTime: 2000})
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("id changed on upsert: %d -> %d", id, again)
	}
	if err := db.UpdateFTS(id, "Renamed", "different words", "", ""); err != nil {
		t.Fatal(err)
	}
	if results, _ := db.Search("world", 10); len(results) != 0 {
		t.Errorf("stale FTS row: %+v", results)
	}
}

func TestDeleteArticle(t *testing.T) {
	db, idx := newTestIndexer(t)

	if err := idx.IndexDocument("a.md", []byte("#####\ntags = [\"go\"]\n#####\n# Alpha words"), time.Unix(1000, 0)); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteArticle("a.md"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteArticle("missing.md"); err != nil {
		t.Errorf("deleting a missing article should be a no-op: %v", err)
	}

	if results, _ := db.Search("alpha", 10); len(results) != 0 {
		t.Errorf("search after delete: %+v", results)
	}
	if tagged, _ := db.ArticlesByTag("go"); len(tagged) != 0 {
		t.Errorf("tags after delete: %+v", tagged)
	}
	if hash, _ := db.GetArticleHash("a.md"); hash != "" {
		t.Errorf("hash after delete: %q", hash)
	}
}
