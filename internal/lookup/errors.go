package lookup

import (
	"errors"
	"fmt"

	"github.com/roach88/phasedb/internal/chem"
)

// Code categorizes lookup errors.
type Code string

const (
	// CodeCompoundNotFound indicates no compound matches an identifier or id.
	CodeCompoundNotFound Code = "COMPOUND_NOT_FOUND"

	// CodeInvalidState indicates an unknown physical-state label or id.
	CodeInvalidState Code = "INVALID_STATE"

	// CodeInvalidPropertyKind indicates an unknown enthalpy or point kind.
	CodeInvalidPropertyKind Code = "INVALID_PROPERTY_KIND"

	// CodePropertyNotFound indicates the compound has no rows for a property.
	CodePropertyNotFound Code = "PROPERTY_NOT_FOUND"

	// CodeIndexOutOfRange indicates an ordinal index past the available rows.
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// CodeAmbiguousIdentifier indicates candidates for different compounds
	// in strict resolution mode.
	CodeAmbiguousIdentifier Code = "AMBIGUOUS_IDENTIFIER"
)

// Error is a lookup failure. Only the fields relevant to the Code are set.
type Error struct {
	Code    Code
	Message string

	// Query is the identifier, state label or kind name that failed.
	Query string

	Compound chem.CompoundID
	Kind     string
	State    string

	Index     int
	Available int

	// Candidates lists the distinct compound ids of an ambiguous identifier.
	Candidates []chem.CompoundID
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the Code of a lookup error, or "" if err is not one.
func CodeOf(err error) Code {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsCompoundNotFound reports whether err is a CodeCompoundNotFound error.
func IsCompoundNotFound(err error) bool { return CodeOf(err) == CodeCompoundNotFound }

// IsInvalidState reports whether err is a CodeInvalidState error.
func IsInvalidState(err error) bool { return CodeOf(err) == CodeInvalidState }

// IsInvalidPropertyKind reports whether err is a CodeInvalidPropertyKind error.
func IsInvalidPropertyKind(err error) bool { return CodeOf(err) == CodeInvalidPropertyKind }

// IsPropertyNotFound reports whether err is a CodePropertyNotFound error.
func IsPropertyNotFound(err error) bool { return CodeOf(err) == CodePropertyNotFound }

// IsIndexOutOfRange reports whether err is a CodeIndexOutOfRange error.
func IsIndexOutOfRange(err error) bool { return CodeOf(err) == CodeIndexOutOfRange }

// IsAmbiguousIdentifier reports whether err is a CodeAmbiguousIdentifier error.
func IsAmbiguousIdentifier(err error) bool { return CodeOf(err) == CodeAmbiguousIdentifier }

func compoundNotFound(query string) *Error {
	return &Error{
		Code:    CodeCompoundNotFound,
		Message: fmt.Sprintf("no compound matches %q", query),
		Query:   query,
	}
}

func compoundIDNotFound(id chem.CompoundID) *Error {
	return &Error{
		Code:     CodeCompoundNotFound,
		Message:  fmt.Sprintf("no compound with id %d", id),
		Compound: id,
	}
}

func invalidState(label string) *Error {
	return &Error{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("unknown physical state %q", label),
		Query:   label,
		State:   label,
	}
}

func duplicateState(label string, ids []chem.StateID) *Error {
	return &Error{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("physical state %q is defined by %d rows (ids %v)", label, len(ids), ids),
		Query:   label,
		State:   label,
	}
}

func invalidStateID(id chem.StateID) *Error {
	return &Error{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("no physical state with id %d", id),
		State:   fmt.Sprintf("%d", id),
	}
}

func invalidPropertyKind(name string, valid []string) *Error {
	return &Error{
		Code:    CodeInvalidPropertyKind,
		Message: fmt.Sprintf("unknown property kind %q (valid: %v)", name, valid),
		Query:   name,
		Kind:    name,
	}
}

func propertyNotFound(id chem.CompoundID, kind, state string) *Error {
	msg := fmt.Sprintf("no %s data for compound %d", kind, id)
	if state != "" {
		msg = fmt.Sprintf("no %s data for compound %d in state %s", kind, id, state)
	}
	return &Error{
		Code:     CodePropertyNotFound,
		Message:  msg,
		Compound: id,
		Kind:     kind,
		State:    state,
	}
}

func indexOutOfRange(kind string, index, available int) *Error {
	return &Error{
		Code:      CodeIndexOutOfRange,
		Message:   fmt.Sprintf("%s index %d out of range (%d available)", kind, index, available),
		Kind:      kind,
		Index:     index,
		Available: available,
	}
}

func ambiguousIdentifier(query string, ids []chem.CompoundID) *Error {
	return &Error{
		Code:       CodeAmbiguousIdentifier,
		Message:    fmt.Sprintf("%q matches compounds %v", query, ids),
		Query:      query,
		Candidates: ids,
	}
}
