package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/phasedb/internal/config"
	"github.com/roach88/phasedb/internal/lookup"
	"github.com/roach88/phasedb/internal/store"
	"github.com/roach88/phasedb/internal/units"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Lookup failure (unknown compound, missing data, bad index)
	ExitCommandError = 2 // Command error (bad configuration, unreadable database, unit defects)
)

// Error codes for failures that are not lookup errors.
const (
	ErrCodeConfig    = "CONFIG_ERROR"
	ErrCodeLoad      = "STORE_LOAD_ERROR"
	ErrCodeDimension = "DIMENSIONAL_MISMATCH"
	ErrCodeUnit      = "INVALID_UNIT"
	ErrCodeGeneric   = "ERROR"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders command results as text, JSON or msgpack.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the envelope for JSON and msgpack output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // lookup code or one of the ErrCode constants
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format. Text
// output prints data with its String method.
func (f *OutputFormatter) Success(data any) error {
	if f.structured() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.structured() {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail renders err and returns the ExitError the command should return.
// Lookup failures exit with ExitFailure; load, configuration and
// dimensional errors are fatal and exit with ExitCommandError.
func (f *OutputFormatter) Fail(err error) error {
	var (
		le *lookup.Error
		ee *ExitError
	)
	switch {
	case errors.As(err, &ee):
		return err
	case errors.As(err, &le):
		_ = f.Error(string(le.Code), le.Message, lookupDetails(le))
		return WrapExitError(ExitFailure, "lookup failed", err)
	case store.IsLoadError(err):
		_ = f.Error(ErrCodeLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load database", err)
	case config.IsConfigError(err):
		_ = f.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	case errors.Is(err, units.ErrUnknownUnit):
		_ = f.Error(ErrCodeUnit, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid unit", err)
	case units.IsDimensionalMismatch(err):
		_ = f.Error(ErrCodeDimension, err.Error(), nil)
		return WrapExitError(ExitCommandError, "dimensional mismatch", err)
	default:
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "command failed", err)
	}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func (f *OutputFormatter) structured() bool {
	return f.Format == config.FormatJSON || f.Format == config.FormatMsgpack
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	if f.Format == config.FormatMsgpack {
		enc := msgpack.NewEncoder(f.Writer)
		enc.SetCustomStructTag("json")
		return enc.Encode(resp)
	}
	return json.NewEncoder(f.Writer).Encode(resp)
}

// lookupDetails collects the populated context fields of a lookup error.
func lookupDetails(le *lookup.Error) any {
	d := map[string]any{}
	if le.Query != "" {
		d["query"] = le.Query
	}
	if le.Compound != 0 {
		d["compound"] = le.Compound
	}
	if le.Kind != "" {
		d["kind"] = le.Kind
	}
	if le.State != "" {
		d["state"] = le.State
	}
	if le.Code == lookup.CodeIndexOutOfRange {
		d["index"] = le.Index
		d["available"] = le.Available
	}
	if len(le.Candidates) > 0 {
		d["candidates"] = le.Candidates
	}
	if len(d) == 0 {
		return nil
	}
	return d
}
