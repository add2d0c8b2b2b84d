package testutil

import (
	"database/sql"
	_ "embed"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed fixture.sql
var fixtureSQL string

// Fixture compound ids.
const (
	Water         = 1
	CarbonDioxide = 2
	Ammonia       = 3
	Testium       = 4
)

// FixtureSQL returns the schema and seed statements of the standard fixture.
func FixtureSQL() string { return fixtureSQL }

// FixtureDB writes the standard compound fixture to a fresh database file in
// a test temp directory and returns its path.
func FixtureDB(t testing.TB) string {
	t.Helper()
	return NewDB(t, fixtureSQL)
}

// NewDB creates a database file from the given SQL script.
func NewDB(t testing.TB, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compounds.db")
	Exec(t, path, script)
	return path
}

// Exec runs statements against the database at path with a writable
// connection, creating the file if needed.
func Exec(t testing.TB, path string, statements ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec fixture sql: %v", err)
		}
	}
}
