package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestIndexer(t *testing.T) (*DB, *Indexer) {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, NewIndexer(db, t.TempDir())
}

const seriesArticle = `#####
date = "2025-02-01"
author = "Ada"
tags = ["rust", "async"]
series = ["deep-dives"]

[[article_series]]
name = "rust/async"
prev = "rust/async/01-intro"
next = "rust/async/03-sinks"

[[references]]
title = "Tokio"
url = "https://tokio.rs"
description = "Runtime"

[[references]]
title = "Futures"
url = "https://docs.rs/futures"
#####

# Streams

## Polling
`

func TestIndexDocument(t *testing.T) {
	db, idx := newTestIndexer(t)

	if err := idx.IndexDocument("rust/async/02-streams.md", []byte(seriesArticle), time.Unix(1000, 0)); err != nil {
		t.Fatal(err)
	}
	if err := idx.IndexDocument("plain.md", []byte("# Plain\n\nno metadata"), time.Unix(1000, 0)); err != nil {
		t.Fatal(err)
	}
	if err := idx.IndexDocument("old.md", []byte("#####\ndate = \"2020-01-01\"\ntags = [\"rust\"]\n#####\n# Old"), time.Unix(1000, 0)); err != nil {
		t.Fatal(err)
	}

	results, err := db.Search("polling", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Streams" {
		t.Errorf("search: got %+v", results)
	}

	tagged, err := db.ArticlesByTag("rust")
	if err != nil {
		t.Fatal(err)
	}
	if len(tagged) != 2 || tagged[0].Path != "old.md" || tagged[1].Path != "rust/async/02-streams.md" {
		t.Errorf("by tag: got %+v", tagged)
	}

	members, err := db.ArticlesInSeries("rust/async")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].PrimarySeries == nil || *members[0].PrimarySeries != "rust/async" {
		t.Errorf("series members: got %+v", members)
	}

	series, err := db.SeriesNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || series[0].Name != "deep-dives" || series[1].Name != "rust/async" || series[1].Count != 1 {
		t.Errorf("series names: got %+v", series)
	}

	refs, err := db.References("rust/async/02-streams.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || refs[0].Title != "Tokio" || refs[0].Description == nil || refs[1].Description != nil {
		t.Errorf("references: got %+v", refs)
	}

	links, err := db.SeriesLinks("rust/async/02-streams.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || links[0].Next == nil || *links[0].Next != "rust/async/03-sinks" {
		t.Errorf("series links: got %+v", links)
	}

	recent, err := db.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, r := range recent {
		order = append(order, r.Path)
	}
	want := []string{"rust/async/02-streams.md", "old.md", "plain.md"}
	if len(order) != len(want) {
		t.Fatalf("recent: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("recent: got %v, want %v", order, want)
			break
		}
	}

	headings, err := db.SearchHeadings("Poll", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 1 || headings[0].Level != 2 {
		t.Errorf("headings: got %+v", headings)
	}
}

func TestIndexDocument_ReindexReplacesDerivedRows(t *testing.T) {
	db, idx := newTestIndexer(t)

	if err := idx.IndexDocument("a.md", []byte("#####\ntags = [\"one\"]\n#####\n# A"), time.Unix(1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := idx.IndexDocument("a.md", []byte("#####\ntags = [\"two\"]\n#####\n# A"), time.Unix(2, 0)); err != nil {
		t.Fatal(err)
	}

	if old, _ := db.ArticlesByTag("one"); len(old) != 0 {
		t.Errorf("stale tag: %+v", old)
	}
	if cur, _ := db.ArticlesByTag("two"); len(cur) != 1 {
		t.Errorf("missing tag: %+v", cur)
	}
}

func TestIndexDocument_MalformedMetadataIndexedAsPlain(t *testing.T) {
	db, idx := newTestIndexer(t)

	doc := "#####\n[[references]]\ntitle = \"no url\"\n#####\n# Broken"
	if err := idx.IndexDocument("broken.md", []byte(doc), time.Unix(1, 0)); err != nil {
		t.Fatal(err)
	}
	recent, err := db.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Title != "Broken" {
		t.Errorf("got %+v", recent)
	}
	if refs, _ := db.References("broken.md"); len(refs) != 0 {
		t.Errorf("references should not be indexed: %+v", refs)
	}
}

func TestIndexFile(t *testing.T) {
	root := t.TempDir()
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	idx := NewIndexer(db, root)

	dir := filepath.Join(root, "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "etl.md")
	if err := os.WriteFile(path, []byte("#####\n#####\n# ETL"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}
	hash, err := db.GetArticleHash("data/etl.md")
	if err != nil || hash == "" {
		t.Fatalf("hash: %q, %v", hash, err)
	}
	if members, _ := db.ArticlesInSeries("data"); len(members) != 1 {
		t.Errorf("folder series: got %+v", members)
	}

	if err := idx.RemoveFile(path); err != nil {
		t.Fatal(err)
	}
	if hash, _ := db.GetArticleHash("data/etl.md"); hash != "" {
		t.Errorf("hash after remove: %q", hash)
	}

	if err := idx.IndexFile(filepath.Join(root, "missing.md")); err == nil {
		t.Error("expected error for missing file")
	}
}
