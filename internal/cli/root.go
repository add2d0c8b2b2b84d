package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/phasedb/internal/config"
)

// RootOptions holds global flags for all commands. After PersistentPreRunE
// the fields hold the effective configuration, not just the flag values;
// Verbose is set whenever the effective log level is debug.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "msgpack"
	ConfigPath string
	Database   string
	Strict     bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON, config.FormatMsgpack}

// NewRootCommand creates the root command for the phasedb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "phasedb",
		Short: "phasedb - physical properties of pure compounds",
		Long: `Look up physical and thermodynamic properties of pure compounds
from a read-only SQLite property database.

Compounds are identified by name, alternate name, CAS number or formula.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configure(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (text|json|msgpack)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", config.DefaultDatabase, "path to SQLite property database")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "fail on identifiers matching more than one compound")

	// Add subcommands
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewDensityCommand(opts))
	cmd.AddCommand(NewAntoineCommand(opts))
	cmd.AddCommand(NewPointCommand(opts))
	cmd.AddCommand(NewEnthalpyCommand(opts))
	cmd.AddCommand(NewVolumeFusionCommand(opts))
	cmd.AddCommand(NewTablesCommand(opts))

	return cmd
}

// configure layers config file, environment and explicitly set flags, then
// validates the result and installs the logger.
func (o *RootOptions) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return o.configError(cmd, err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("strict") {
		cfg.StrictResolve = o.Strict
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if !isValidFormat(cfg.Format) {
		return o.configError(cmd, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	if err := cfg.Validate(); err != nil {
		return o.configError(cmd, err)
	}

	o.Database = cfg.Database
	o.Format = cfg.Format
	o.Strict = cfg.StrictResolve
	o.Verbose = cfg.Level() <= slog.LevelDebug

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Level(),
	})
	slog.SetDefault(slog.New(handler))
	slog.Debug("configuration", "database", cfg.Database, "format", cfg.Format, "strict", cfg.StrictResolve)
	return nil
}

// configError reports a configuration failure on stderr; the output format
// itself may be what is wrong.
func (o *RootOptions) configError(cmd *cobra.Command, err error) error {
	formatter := &OutputFormatter{Format: config.FormatText, Writer: cmd.ErrOrStderr()}
	_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid configuration", err)
}

// formatter returns an OutputFormatter for the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
