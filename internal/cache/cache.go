package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkravets/newsline/internal/api"
)

// History is the local record of articles the user has seen and acted
// on. It exists for the history/stats/prune commands and never feeds
// back into what the backend recommends; the server keeps its own
// interaction store.
type History struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	h := &History{readDB: readDB, writeDB: writeDB}
	if err := h.init(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) init() error {
	_, err := h.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			key         TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			url         TEXT NOT NULL,
			source      TEXT NOT NULL DEFAULT '',
			topic       TEXT NOT NULL DEFAULT '',
			summary     TEXT NOT NULL DEFAULT '',
			keywords    TEXT NOT NULL DEFAULT '[]',
			seen_at     DATETIME NOT NULL,
			last_action TEXT NOT NULL DEFAULT '',
			action_at   DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_history_seen ON history(seen_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	var errs []error
	if h.readDB != nil {
		errs = append(errs, h.readDB.Close())
	}
	if h.writeDB != nil {
		errs = append(errs, h.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// RecordSeen upserts every article of a freshly fetched page. Seen
// time moves forward on re-fetch; the recorded action does not.
func (h *History) RecordSeen(articles []api.Article, topic string) error {
	tx, err := h.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO history (key, title, url, source, topic, summary, keywords, seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			seen_at = excluded.seen_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		t := topic
		if a.Topic != "" {
			t = a.Topic
		}
		kw, _ := json.Marshal(a.Keywords)
		if _, err := stmt.Exec(a.Key(), a.Title, a.URL, a.Source.Name, t, a.Body(), string(kw), now); err != nil {
			return fmt.Errorf("recording article %s: %w", a.Key(), err)
		}
	}
	return tx.Commit()
}

// RecordAction notes the most recent interaction kind for an article
// already in the history. Unknown keys are ignored.
func (h *History) RecordAction(key, kind string) error {
	_, err := h.writeDB.Exec(
		`UPDATE history SET last_action = ?, action_at = ? WHERE key = ?`,
		kind, time.Now(), key,
	)
	return err
}

// Entry is one row of the local history.
type Entry struct {
	Key        string
	Title      string
	URL        string
	Source     string
	Topic      string
	Summary    string
	Keywords   []string
	SeenAt     time.Time
	LastAction string
}

// Recent returns the newest entries, most recently seen first.
func (h *History) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.readDB.Query(`
		SELECT key, title, url, source, topic, summary, keywords, seen_at, last_action
		FROM history ORDER BY seen_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kw string
		if err := rows.Scan(&e.Key, &e.Title, &e.URL, &e.Source, &e.Topic, &e.Summary, &kw, &e.SeenAt, &e.LastAction); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal([]byte(kw), &e.Keywords); err != nil {
			e.Keywords = nil
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune removes entries last seen before the retention window and
// reclaims disk space.
func (h *History) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := h.writeDB.Exec(`DELETE FROM history WHERE seen_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	if deleted > 0 {
		if _, err := h.writeDB.Exec(`VACUUM`); err != nil {
			return deleted, fmt.Errorf("vacuuming: %w", err)
		}
	}
	return deleted, nil
}

// Stats reports the row count and on-disk size of the history file.
func (h *History) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := h.readDB.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count); err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}
