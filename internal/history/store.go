// Package history keeps a local record of submissions in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/gini/internal/improve"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown entry.
var ErrNotFound = errors.New("history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  INTEGER NOT NULL,
	model       TEXT NOT NULL DEFAULT '',
	input       TEXT NOT NULL,
	kind        TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	improvement TEXT
);
CREATE INDEX IF NOT EXISTS submissions_created_at ON submissions(created_at);
`

// Entry is one recorded submission. Improvement is nil for failures.
type Entry struct {
	ID          int64                `json:"id" yaml:"id"`
	CreatedAt   time.Time            `json:"created_at" yaml:"created_at"`
	Model       string               `json:"model" yaml:"model"`
	Input       string               `json:"input" yaml:"input"`
	Kind        string               `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message     string               `json:"message,omitempty" yaml:"message,omitempty"`
	Improvement *improve.Improvement `json:"improvement,omitempty" yaml:"improvement,omitempty"`
}

// Failed reports whether the submission ended in an error. Rows without an
// improvement count as failed.
func (e Entry) Failed() bool {
	return e.Kind != "" || e.Improvement == nil
}

// NewEntry builds an entry from a submission outcome.
func NewEntry(model, input string, r improve.Result) Entry {
	e := Entry{
		CreatedAt: time.Now(),
		Model:     model,
		Input:     input,
	}
	if r.Failed() {
		e.Kind = r.Kind.String()
		e.Message = r.Message()
	} else {
		e.Improvement = r.Improvement
	}
	return e
}

// Store is a submission history backed by SQLite.
type Store struct {
	path string
	db   *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps writes from different goroutines serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{path: path, db: db}, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Record stores e and returns its id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	var improvement sql.NullString
	if e.Improvement != nil {
		data, err := json.Marshal(e.Improvement)
		if err != nil {
			return 0, fmt.Errorf("marshaling improvement: %w", err)
		}
		improvement = sql.NullString{String: string(data), Valid: true}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (created_at, model, input, kind, message, improvement)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.CreatedAt.UnixNano(), e.Model, e.Input, e.Kind, e.Message, improvement)
	if err != nil {
		return 0, fmt.Errorf("inserting submission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading submission id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, model, input, kind, message, improvement
		FROM submissions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, model, input, kind, message, improvement
		FROM submissions
		WHERE id = ?
	`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e, err
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM submissions")
	if err != nil {
		return 0, fmt.Errorf("clearing submissions: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e           Entry
		createdAt   int64
		improvement sql.NullString
	)
	if err := sc.Scan(&e.ID, &createdAt, &e.Model, &e.Input, &e.Kind, &e.Message, &improvement); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning submission: %w", err)
	}
	e.CreatedAt = time.Unix(0, createdAt)

	if improvement.Valid {
		var imp improve.Improvement
		if err := json.Unmarshal([]byte(improvement.String), &imp); err != nil {
			return Entry{}, fmt.Errorf("decoding improvement %d: %w", e.ID, err)
		}
		e.Improvement = &imp
	}
	return e, nil
}
