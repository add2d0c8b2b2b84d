package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/phasedb/internal/config"
	"github.com/roach88/phasedb/internal/lookup"
	"github.com/roach88/phasedb/internal/store"
	"github.com/roach88/phasedb/internal/units"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(ResolveResult{Query: "water", ID: 1})
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ResolveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "water", resp.Data.Query)
	assert.NotContains(t, buf.String(), "candidates")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("COMPOUND_NOT_FOUND", "no compound matches \"x\"", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "COMPOUND_NOT_FOUND", resp.Error.Code)
	assert.Nil(t, resp.Error.Details)
	assert.NotContains(t, buf.String(), "details")
}

func TestOutputFormatter_MsgpackSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "msgpack",
		Writer: buf,
	}

	err := formatter.Success(TableView{Name: "density", Rows: 6})
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   TableView `json:"data"`
	}
	dec := msgpack.NewDecoder(buf)
	dec.SetCustomStructTag("json")
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, TableView{Name: "density", Rows: 6}, resp.Data)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success(QuantityView{Value: 0.9998, Unit: "g/cm³"})
	require.NoError(t, err)
	assert.Equal(t, "0.9998 g/cm³\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("INVALID_STATE", "unknown physical state \"plasma\"", map[string]string{"state": "plasma"})
	require.NoError(t, err)
	assert.Equal(t, "Error [INVALID_STATE]: unknown physical state \"plasma\"\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"state": "plasma"}
	err := formatter.Error("INVALID_STATE", "unknown physical state", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [INVALID_STATE]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("loaded %d tables", 11)

			assert.Empty(t, buf.String(), "diagnostics never go to stdout")
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "loaded 11 tables")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{
			name:     "lookup",
			err:      &lookup.Error{Code: lookup.CodePropertyNotFound, Message: "no data"},
			wantCode: "PROPERTY_NOT_FOUND",
			wantExit: ExitFailure,
		},
		{
			name:     "wrapped lookup",
			err:      fmt.Errorf("density: %w", &lookup.Error{Code: lookup.CodeIndexOutOfRange}),
			wantCode: "INDEX_OUT_OF_RANGE",
			wantExit: ExitFailure,
		},
		{
			name:     "store load",
			err:      &store.LoadError{Table: "density", Row: 2, Err: errors.New("bad cell")},
			wantCode: ErrCodeLoad,
			wantExit: ExitCommandError,
		},
		{
			name:     "config",
			err:      &config.Error{Source: "env", Err: errors.New("bad bool")},
			wantCode: ErrCodeConfig,
			wantExit: ExitCommandError,
		},
		{
			name:     "unknown unit",
			err:      fmt.Errorf("%w %q", units.ErrUnknownUnit, "furlong"),
			wantCode: ErrCodeUnit,
			wantExit: ExitCommandError,
		},
		{
			name:     "dimensional mismatch",
			err:      &units.MismatchError{Op: "convert", From: units.Kelvin, To: units.Pascal},
			wantCode: ErrCodeDimension,
			wantExit: ExitCommandError,
		},
		{
			name:     "other",
			err:      errors.New("boom"),
			wantCode: ErrCodeGeneric,
			wantExit: ExitCommandError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.Fail(tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestOutputFormatter_FailPassesExitErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	in := NewExitError(ExitCommandError, "already reported")
	err := formatter.Fail(in)
	assert.Same(t, in, err)
	assert.Empty(t, buf.String())
}

func TestLookupDetails(t *testing.T) {
	assert.Nil(t, lookupDetails(&lookup.Error{Code: lookup.CodeCompoundNotFound}))

	d := lookupDetails(&lookup.Error{
		Code:      lookup.CodeIndexOutOfRange,
		Kind:      "density",
		Index:     5,
		Available: 2,
	})
	assert.Equal(t, map[string]any{"kind": "density", "index": 5, "available": 2}, d)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "x"))))
}
