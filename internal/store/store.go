package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a read-only handle on a compound database file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite database at path without creating it.
//
// The connection is configured with:
//   - mode=ro so the file is never created or written
//   - query_only=ON as a second guard against writes
//   - 5-second busy timeout in case an import tool holds a lock
//
// A missing or unreadable file fails with a *LoadError.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, sourceError(fmt.Errorf("database path is empty"))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, sourceError(fmt.Errorf("stat database: %w", err))
	}
	if info.IsDir() {
		return nil, sourceError(fmt.Errorf("database path %s is a directory", path))
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, sourceError(fmt.Errorf("open database: %w", err))
	}

	// Single connection so pragmas apply to every query
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, sourceError(fmt.Errorf("connect to database: %w", err))
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, sourceError(fmt.Errorf("apply pragmas: %w", err))
	}

	return &Store{db: db, path: path}, nil
}

// readOnlyDSN builds a read-only SQLite URI for path. The path is escaped
// so '?', '#' and '%' in file names stay part of the name.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: path, OmitHost: true, RawQuery: "mode=ro"}
	return u.String()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Load reads every table and decodes the typed relations into a new
// Snapshot. The returned snapshot does not reference the database, so the
// store may be closed afterwards.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	tables, order, err := s.readTables(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := decodeSnapshot(tables, order)
	if err != nil {
		return nil, err
	}

	slog.Debug("snapshot loaded",
		"path", s.path,
		"version", snap.Version(),
		"tables", len(order),
		"compounds", len(snap.compounds),
		"point_kinds", len(snap.points),
	)
	return snap, nil
}

// LoadFile opens path, loads a snapshot and closes the database.
func LoadFile(ctx context.Context, path string) (*Snapshot, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "path", path, "error", closeErr)
		}
	}()
	return s.Load(ctx)
}

// applyPragmas sets the read-only connection configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
