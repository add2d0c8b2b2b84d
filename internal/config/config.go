// Package config builds the effective phasedb configuration.
//
// Layers, later wins:
//
//  1. Default()
//  2. a YAML file (unknown keys rejected)
//  3. PHASEDB_* environment variables
//  4. command-line flags, applied by the caller
//
// The result is checked by Validate against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultDatabase is used when no other layer names a database file.
const DefaultDatabase = "data/data.db"

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Config is the effective configuration.
type Config struct {
	Database      string `yaml:"database" json:"database" env:"PHASEDB_DATABASE"`
	Format        string `yaml:"format" json:"format" env:"PHASEDB_FORMAT"`
	LogLevel      string `yaml:"log_level" json:"log_level" env:"PHASEDB_LOG_LEVEL"`
	StrictResolve bool   `yaml:"strict_resolve" json:"strict_resolve" env:"PHASEDB_STRICT_RESOLVE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DefaultDatabase,
		Format:   FormatText,
		LogLevel: "info",
	}
}

// Error reports a configuration problem. Source is the file path, "env" or
// "schema".
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps an *Error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// Load applies defaults, the file at path (skipped when path is empty) and
// the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Source: path, Err: err}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Source: path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	return nil
}

// ApplyEnv overlays PHASEDB_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return &Error{Source: "env", Err: fmt.Errorf("parse env: %w", err)}
	}
	return nil
}

// Level returns the slog level named by LogLevel, Info if it is unknown.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

//go:embed schema.cue
var schemaSource string

// Validate checks c against the #Config schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return &Error{Source: "schema", Err: err}
	}

	v := schema.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &Error{Source: "schema", Err: firstCUEError(err)}
	}
	return nil
}

// firstCUEError trims a CUE error list to its first entry.
func firstCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	return errs[0]
}
