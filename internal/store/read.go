package store

import (
	"context"
	"fmt"
	"strings"
)

// Table is a raw relation as read from the database.
// Cell values are the driver's native types: int64, float64, string,
// []byte or nil.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every named column is present.
func (t Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if t.ColumnIndex(n) < 0 {
			return false
		}
	}
	return true
}

func (t Table) clone() Table {
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]any(nil), r...)
	}
	return Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    rows,
	}
}

// readTables reads every user table. Tables are returned keyed by name
// together with their names in sorted order.
func (s *Store) readTables(ctx context.Context) (map[string]Table, []string, error) {
	names, err := s.tableNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	tables := make(map[string]Table, len(names))
	for _, name := range names {
		t, err := s.readTable(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		tables[name] = t
	}
	return tables, names, nil
}

// tableNames lists user tables ORDER BY name.
func (s *Store) tableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, sourceError(fmt.Errorf("query table names: %w", err))
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, sourceError(fmt.Errorf("scan table name: %w", err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, sourceError(fmt.Errorf("iterate table names: %w", err))
	}
	return names, nil
}

// readTable performs a full read of one table in rowid order.
func (s *Store) readTable(ctx context.Context, name string) (Table, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY rowid ASC", quoteIdent(name)))
	if err != nil {
		return Table{}, tableError(name, fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Table{}, tableError(name, fmt.Errorf("columns: %w", err))
	}

	t := Table{Name: name, Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, rowError(name, len(t.Rows), fmt.Errorf("scan: %w", err))
		}
		t.Rows = append(t.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return Table{}, tableError(name, fmt.Errorf("iterate: %w", err))
	}
	return t, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
