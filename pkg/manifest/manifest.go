// Package manifest keeps a SQLite registry of generated run configs so an
// operator can audit what a plan produced without scanning the output
// directory.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/LynkerIntel/nh-rungen/pkg/expand"
)

const createRuns = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	basin TEXT NOT NULL,
	seed TEXT NOT NULL,
	template TEXT NOT NULL,
	config_path TEXT NOT NULL,
	driver_line TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);`

// Entry is one recorded config generation.
type Entry struct {
	ID         int64
	Basin      string
	Seed       string
	Template   string
	ConfigPath string
	DriverLine string
	CreatedAt  time.Time
}

// Manifest wraps the runs database. It satisfies expand.Manifest.
type Manifest struct {
	db  *sql.DB
	now func() time.Time
}

// Ensure the expander seam is satisfied.
var _ expand.Manifest = (*Manifest)(nil)

// Open opens (creating if needed) the manifest database at path and ensures
// the schema exists.
func Open(path string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	if _, err := db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("manifest: init schema: %w", err)
	}
	return &Manifest{db: db, now: time.Now}, nil
}

// Record inserts one row for a generated config.
func (m *Manifest) Record(ctx context.Context, rec expand.RunRecord) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO runs (basin, seed, template, config_path, driver_line, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Basin, rec.Seed, rec.Template, rec.ConfigPath, rec.DriverLine, m.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("manifest: insert run: %w", err)
	}
	return nil
}

// List returns recorded runs, newest first.
func (m *Manifest) List(ctx context.Context) ([]Entry, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT id, basin, seed, template, config_path, driver_line, created_at FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("manifest: query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Basin, &e.Seed, &e.Template, &e.ConfigPath, &e.DriverLine, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("manifest: scan run: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("manifest: iterate runs: %w", err)
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (m *Manifest) Close() error {
	return m.db.Close()
}
