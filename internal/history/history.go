// Package history persists how long labeled runs took, so the next run of
// the same label can show a progress bar with a seeded ETA instead of a
// bare spinner.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// estimateSamples caps how many recent runs feed the estimate, so old
// timings age out as the command being measured changes.
const estimateSamples = 5

// Run is one recorded execution.
type Run struct {
	ID        int64
	Label     string
	Duration  time.Duration
	OK        bool
	CreatedAt string
}

// Store records run durations in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open ensures the parent directory exists, opens the database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one completed run.
func (s *Store) Record(label string, d time.Duration, ok bool) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	if _, err := s.db.Exec(
		`INSERT INTO runs (label, seconds, ok) VALUES (?, ?, ?)`,
		label, d.Seconds(), okInt,
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Estimate returns the mean duration of the most recent successful runs of
// label. The second return is false when no runs are recorded.
func (s *Store) Estimate(label string) (time.Duration, bool, error) {
	row := s.db.QueryRow(
		`SELECT AVG(seconds), COUNT(*) FROM (
			SELECT seconds FROM runs
			WHERE label = ? AND ok = 1
			ORDER BY id DESC LIMIT ?
		)`, label, estimateSamples,
	)
	var avg sql.NullFloat64
	var n int
	if err := row.Scan(&avg, &n); err != nil {
		return 0, false, fmt.Errorf("estimate: %w", err)
	}
	if n == 0 || !avg.Valid {
		return 0, false, nil
	}
	return time.Duration(avg.Float64 * float64(time.Second)), true, nil
}

// List returns up to limit runs, most recent first. limit <= 0 lists all.
func (s *Store) List(limit int) ([]Run, error) {
	q := `SELECT id, label, seconds, ok, created_at FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Run
	for rows.Next() {
		var r Run
		var secs float64
		var okInt int
		if err := rows.Scan(&r.ID, &r.Label, &secs, &okInt, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(secs * float64(time.Second))
		r.OK = okInt == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear deletes every recorded run.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// applyMigrations applies the embedded schema and performs lightweight
// post-creation migrations (adding new columns when needed).
func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return ensureRunColumns(db)
}

// ensureRunColumns checks for columns added after the first release and
// adds them when missing.
func ensureRunColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(runs)")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !cols["ok"] {
		if _, err := db.Exec("ALTER TABLE runs ADD COLUMN ok INTEGER NOT NULL DEFAULT 1"); err != nil {
			return err
		}
	}
	return nil
}
