package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mkravets/newsline/internal/api"
)

func openTestHistory(t *testing.T) (*History, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h, path
}

func TestRecordSeenAndRecent(t *testing.T) {
	h, _ := openTestHistory(t)

	articles := []api.Article{
		{Title: "A", URL: "http://a", Source: api.Source{Name: "BBC"}, Keywords: []string{"tech"}},
		{Title: "B", URL: "http://b", Topic: "science"},
		{Title: "no url"},
	}
	if err := h.RecordSeen(articles, "technology"); err != nil {
		t.Fatalf("RecordSeen: %v", err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (empty URL skipped)", len(entries))
	}

	byKey := map[string]Entry{}
	for _, e := range entries {
		byKey[e.Key] = e
	}
	if e := byKey["http://a"]; e.Topic != "technology" || e.Source != "BBC" || len(e.Keywords) != 1 {
		t.Errorf("entry a = %+v", e)
	}
	if e := byKey["http://b"]; e.Topic != "science" {
		t.Errorf("entry b topic = %q, article topic should win", e.Topic)
	}
}

func TestRecordSeenUpsert(t *testing.T) {
	h, _ := openTestHistory(t)

	if err := h.RecordSeen([]api.Article{{Title: "old", URL: "http://a"}}, "tech"); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSeen([]api.Article{{Title: "new", URL: "http://a"}}, "tech"); err != nil {
		t.Fatal(err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Title != "new" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecordAction(t *testing.T) {
	h, _ := openTestHistory(t)

	if err := h.RecordSeen([]api.Article{{Title: "A", URL: "http://a"}}, "tech"); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordAction("http://a", "like"); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}
	// Unknown key is a silent no-op.
	if err := h.RecordAction("http://missing", "save"); err != nil {
		t.Fatalf("RecordAction unknown key: %v", err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].LastAction != "like" {
		t.Errorf("last action = %q", entries[0].LastAction)
	}
}

func TestPrune(t *testing.T) {
	h, _ := openTestHistory(t)

	if err := h.RecordSeen([]api.Article{{Title: "A", URL: "http://a"}}, "tech"); err != nil {
		t.Fatal(err)
	}

	deleted, err := h.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d fresh entries", deleted)
	}

	deleted, err = h.Prune(-time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestStats(t *testing.T) {
	h, path := openTestHistory(t)

	if err := h.RecordSeen([]api.Article{{Title: "A", URL: "http://a"}}, "tech"); err != nil {
		t.Fatal(err)
	}

	count, size, err := h.Stats(path)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d", count)
	}
	if size <= 0 {
		t.Errorf("size = %d", size)
	}
}
