// Package history keeps a SQLite journal of evaluated expressions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SchemaVersion is the journal schema written by this package.
const SchemaVersion = "1"

// Entry is one journaled evaluation.
type Entry struct {
	ID      int64
	Session string
	Input   string
	Result  float64
	// Warnings is the number of problems found in the input.
	Warnings int
	Time     time.Time
}

// Journal is a SQLite-backed evaluation journal. It is safe for concurrent
// use.
type Journal struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS evaluations (
			id INTEGER PRIMARY KEY,
			session TEXT NOT NULL,
			input TEXT NOT NULL,
			result REAL,
			result_text TEXT NOT NULL,
			warnings INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS evaluations_session ON evaluations (session, id);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{db: db}
	var version string
	err = db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec("INSERT INTO metadata (key, value) VALUES ('schema_version', ?)", SchemaVersion)
		if err != nil {
			db.Close()
			return nil, err
		}
	case err != nil:
		db.Close()
		return nil, err
	case version != SchemaVersion:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	return j, nil
}

// Append records an evaluation and returns its id. A zero Time is replaced
// with the current time.
func (j *Journal) Append(ctx context.Context, e Entry) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	var result any
	if !math.IsNaN(e.Result) && !math.IsInf(e.Result, 0) {
		result = e.Result
	}
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO evaluations (session, input, result, result_text, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Session, e.Input, result, resultText(e.Result), e.Warnings, e.Time.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns up to limit of the latest entries, oldest first. A limit of
// zero or less returns every entry.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	return j.query(ctx, `
		SELECT id, session, input, result, result_text, warnings, created_at
		FROM evaluations ORDER BY id DESC LIMIT ?
	`, limit)
}

// Session returns every entry of one session, oldest first.
func (j *Journal) Session(ctx context.Context, id string) ([]Entry, error) {
	return j.query(ctx, `
		SELECT id, session, input, result, result_text, warnings, created_at
		FROM evaluations WHERE session = ? ORDER BY id DESC
	`, id)
}

// query runs a query selecting entries newest first and returns them oldest
// first.
func (j *Journal) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			result  sql.NullFloat64
			text    string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Input, &result, &text, &e.Warnings, &created); err != nil {
			return nil, err
		}
		if result.Valid {
			e.Result = result.Float64
		} else if e.Result, err = strconv.ParseFloat(text, 64); err != nil {
			return nil, fmt.Errorf("entry %d: bad result %q", e.ID, text)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("entry %d: bad time: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, k := 0, len(entries)-1; i < k; i, k = i+1, k-1 {
		entries[i], entries[k] = entries[k], entries[i]
	}
	return entries, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}

// NewSessionID returns a short random session id like "sess_1a2b3c4d".
func NewSessionID() string {
	u := uuid.New().String()
	return "sess_" + strings.ReplaceAll(u[:8], "-", "")
}

func resultText(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
