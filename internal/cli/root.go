package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Constants string // CUE constant set; empty selects CODATA
	Database  string // sqlite evaluation log; empty disables recording

	LogLevel slog.Level
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the horizon CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "horizon",
		Short: "horizon - relativistic observer formulas",
		Long: `Evaluate the closed-form relativistic observer formulas against a constant set.

Evaluations can be recorded to a sqlite log and replayed bit for bit.

Environment:
  HORIZON_DB         evaluation log path (overridden by --db)
  HORIZON_CONSTANTS  CUE constant set (overridden by --constants)
  HORIZON_LOG_LEVEL  debug, info, warn or error (default info)`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid environment", err)
			}
			opts.applyConfig(cfg)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Constants, "constants", "", "CUE constant set file or directory")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to sqlite evaluation log")

	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))

	return cmd
}

// applyConfig fills options the flags left empty from the environment.
func (o *RootOptions) applyConfig(cfg config.Config) {
	if o.Constants == "" {
		o.Constants = cfg.Constants
	}
	if o.Database == "" {
		o.Database = cfg.DB
	}
	o.LogLevel = cfg.LogLevel
}

// logger builds the process logger on w.
func (o *RootOptions) logger(w interface{ Write([]byte) (int, error) }) *slog.Logger {
	return config.Config{LogLevel: o.LogLevel}.Logger(w, o.Verbose)
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// requireDatabase returns the evaluation log path or a command error.
func (o *RootOptions) requireDatabase() (string, error) {
	if o.Database == "" {
		return "", NewExitError(ExitCommandError, "database path required (--db or HORIZON_DB)")
	}
	return o.Database, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
