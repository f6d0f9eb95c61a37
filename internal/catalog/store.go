// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records completed conversions in a SQLite database so a
// batch run can skip inputs whose content and target format are unchanged.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded conversion.
type Entry struct {
	Source      string    `json:"source" yaml:"source"`
	Digest      string    `json:"digest" yaml:"digest"`
	Format      string    `json:"format" yaml:"format"`
	Output      string    `json:"output" yaml:"output"`
	Bytes       int64     `json:"bytes" yaml:"bytes"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at path, creating parent directories
// and the schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
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
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT NOT NULL,
			digest TEXT NOT NULL,
			format TEXT NOT NULL,
			output TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			converted_at TEXT NOT NULL,
			PRIMARY KEY (source, format)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_digest ON conversions(digest)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Record inserts or replaces the entry for (Source, Format). A zero
// ConvertedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, digest, format, output, bytes, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source, format) DO UPDATE SET
			digest=excluded.digest, output=excluded.output,
			bytes=excluded.bytes, converted_at=excluded.converted_at`,
		e.Source, e.Digest, e.Format, e.Output, e.Bytes,
		e.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.Source, err)
	}
	return nil
}

// Lookup returns the entry for source and format. The boolean is false when
// none is recorded.
func (s *Store) Lookup(ctx context.Context, source, format string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT source, digest, format, output, bytes, converted_at
		 FROM conversions WHERE source = ? AND format = ?`, source, format)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	return e, true, nil
}

// Fresh reports whether source was already converted to format from content
// with the given digest and the recorded output file still exists.
func (s *Store) Fresh(ctx context.Context, source, digest, format string) (bool, error) {
	e, ok, err := s.Lookup(ctx, source, format)
	if err != nil || !ok {
		return false, err
	}
	if e.Digest != digest {
		return false, nil
	}
	if _, err := os.Stat(e.Output); err != nil {
		return false, nil
	}
	return true, nil
}

// List returns every entry ordered by source and format.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, digest, format, output, bytes, converted_at
		 FROM conversions ORDER BY source, format`)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget removes the entry for source and format.
func (s *Store) Forget(ctx context.Context, source, format string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM conversions WHERE source = ? AND format = ?`, source, format)
	if err != nil {
		return fmt.Errorf("forgetting %s: %w", source, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var at string
	if err := sc.Scan(&e.Source, &e.Digest, &e.Format, &e.Output, &e.Bytes, &at); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing converted_at %q: %w", at, err)
	}
	e.ConvertedAt = t
	return e, nil
}
