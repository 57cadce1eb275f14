// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a SQLite snapshot of the cleaned metadata table so
// that it can be queried with SQL outside the explorer.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Store manages the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			journal TEXT NOT NULL,
			publish_time TEXT NOT NULL,
			publish_date TEXT NOT NULL,
			year INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(journal)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			source TEXT NOT NULL,
			rows INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace swaps the stored table for records in one transaction and
// reports progress to w.
func (s *Store) Replace(ctx context.Context, source string, records []types.CleanedRecord, w io.Writer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing papers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (title, abstract, journal, publish_time, publish_date, year)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Title, r.Abstract, r.Journal, r.PublishTime,
			r.PublishDate.Format(types.DateLayout), r.Year,
		)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, rows, created_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source=excluded.source, rows=excluded.rows, created_at=excluded.created_at`,
		source, len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	fmt.Fprintf(w, "stored %d rows\n", len(records))
	return nil
}

// Records reads back every stored row in insertion order.
func (s *Store) Records(ctx context.Context) ([]types.CleanedRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, abstract, journal, publish_time, publish_date, year
		 FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	out := []types.CleanedRecord{}
	for rows.Next() {
		var (
			rec  types.CleanedRecord
			date string
		)
		if err := rows.Scan(&rec.Title, &rec.Abstract, &rec.Journal, &rec.PublishTime, &date, &rec.Year); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		rec.PublishDate, err = time.Parse(types.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", date, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadSnapshot reads the cleaned table from the snapshot database at path.
// It has the shape of dataset.LoadFunc; a missing database wraps
// dataset.ErrMissingInputFile.
func LoadSnapshot(path string) (int, []types.CleanedRecord, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil, fmt.Errorf("%w: %s", dataset.ErrMissingInputFile, path)
		}
		return 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	s, err := Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer s.Close()

	records, err := s.Records(context.Background())
	if err != nil {
		return 0, nil, err
	}
	return len(records), records, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// JournalCounts returns per-journal counts, descending, ties by first
// insertion, limited to n rows.
func (s *Store) JournalCounts(ctx context.Context, n int) ([]types.Count, error) {
	out := []types.Count{}
	if n <= 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT journal, count(*) AS c, min(id) AS first
		 FROM papers GROUP BY journal ORDER BY c DESC, first ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying journal counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c     types.Count
			first int64
		)
		if err := rows.Scan(&c.Key, &c.Count, &first); err != nil {
			return nil, fmt.Errorf("scanning journal count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
