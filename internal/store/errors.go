package store

import (
	"errors"
	"fmt"
)

// LoadError reports that the store could not be loaded: the source is
// unreachable, a required table is missing, or a table is malformed.
// It is fatal at startup.
type LoadError struct {
	// Table is the offending table, empty for source-level failures.
	Table string

	// Row is the zero-based row index for cell-level failures, -1 otherwise.
	Row int

	Err error
}

func (e *LoadError) Error() string {
	switch {
	case e.Table != "" && e.Row >= 0:
		return fmt.Sprintf("store load: table %q row %d: %v", e.Table, e.Row, e.Err)
	case e.Table != "":
		return fmt.Sprintf("store load: table %q: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("store load: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError returns true if err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

func sourceError(err error) *LoadError {
	return &LoadError{Row: -1, Err: err}
}

func tableError(table string, err error) *LoadError {
	return &LoadError{Table: table, Row: -1, Err: err}
}

func rowError(table string, row int, err error) *LoadError {
	return &LoadError{Table: table, Row: row, Err: err}
}
