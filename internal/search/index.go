package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"suggest/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Index is a persistent suggestion store backed by SQLite.
//
// Search ranks prefix matches ahead of substring matches, then by how often a
// title was committed (see RecordUse), then alphabetically. Index is safe for
// concurrent use.
type Index struct {
	db     *sql.DB
	closed atomic.Bool
}

// OpenIndex opens (creating if needed) the index database at path.
func OpenIndex(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer; reads are short.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return idx, nil
}

func (idx *Index) migrate() error {
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS suggestions (
			title        TEXT PRIMARY KEY,
			title_lower  TEXT NOT NULL,
			fields       TEXT NOT NULL DEFAULT '{}',
			uses         INTEGER NOT NULL DEFAULT 0,
			last_used_at INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_suggestions_title_lower ON suggestions(title_lower);
	`)
	return err
}

// Close closes the database.
func (idx *Index) Close() error {
	if idx.closed.Swap(true) {
		return nil
	}
	return idx.db.Close()
}

// Add inserts suggestions, replacing the fields of titles already present.
// Usage counts are preserved.
func (idx *Index) Add(ctx context.Context, items []domain.Suggestion) (int, error) {
	if idx.closed.Load() {
		return 0, ErrClosed
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO suggestions (title, title_lower, fields) VALUES (?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET fields = excluded.fields
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		fields, err := encodeFields(item.Fields)
		if err != nil {
			return 0, fmt.Errorf("failed to encode fields for %q: %w", title, err)
		}
		if _, err := stmt.ExecContext(ctx, title, strings.ToLower(title), fields); err != nil {
			return 0, fmt.Errorf("failed to insert %q: %w", title, err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return added, nil
}

// RecordUse counts a committed title. Titles not yet indexed are added, so
// text the user typed and confirmed is offered next time.
func (idx *Index) RecordUse(ctx context.Context, title string) error {
	if idx.closed.Load() {
		return ErrClosed
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	_, err := idx.db.ExecContext(ctx, `
		INSERT INTO suggestions (title, title_lower, uses, last_used_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(title) DO UPDATE SET uses = uses + 1, last_used_at = excluded.last_used_at
	`, title, strings.ToLower(title), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record use of %q: %w", title, err)
	}
	return nil
}

// Uses returns how many times title was committed.
func (idx *Index) Uses(ctx context.Context, title string) (int, error) {
	var uses int
	err := idx.db.QueryRowContext(ctx, `SELECT uses FROM suggestions WHERE title = ?`, title).Scan(&uses)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read uses: %w", err)
	}
	return uses, nil
}

// Count returns the number of indexed titles.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := idx.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM suggestions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count suggestions: %w", err)
	}
	return n, nil
}

// Search implements Searcher.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if idx.closed.Load() {
		return nil, &Error{Backend: "sqlite", Query: query, Err: ErrClosed}
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	pattern := escapeLike(q)

	rows, err := idx.db.QueryContext(ctx, `
		SELECT title, fields FROM suggestions
		WHERE title_lower LIKE ? ESCAPE '\'
		ORDER BY (title_lower LIKE ? ESCAPE '\') DESC, uses DESC, title_lower ASC
		LIMIT ?
	`, "%"+pattern+"%", pattern+"%", clampLimit(limit))
	if err != nil {
		return nil, &Error{Backend: "sqlite", Query: query, Err: err}
	}
	defer rows.Close()

	var results []domain.Suggestion
	for rows.Next() {
		var (
			title  string
			fields string
		)
		if err := rows.Scan(&title, &fields); err != nil {
			return nil, &Error{Backend: "sqlite", Query: query, Err: err}
		}
		s := domain.Suggestion{Title: title}
		if s.Fields, err = decodeFields(fields); err != nil {
			return nil, &Error{Backend: "sqlite", Query: query, Err: err}
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Backend: "sqlite", Query: query, Err: err}
	}
	return results, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func encodeFields(fields map[string]any) (string, error) {
	if len(fields) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeFields(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return fields, nil
}
