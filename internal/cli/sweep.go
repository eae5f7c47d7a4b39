package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/engine"
	"github.com/roach88/horizon/internal/ir"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	MassKg float64
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep <name>",
		Short: "Emit plot data for a parameter sweep",
		Long: fmt.Sprintf(`Emit the x/y data series of a parameter sweep.

Available sweeps: %v

Text output is two whitespace-separated columns; non-finite values are
written as +Inf, -Inf and NaN. Sweeps are never recorded.

Examples:
  horizon sweep velocity
  horizon sweep uncertainty --mass 1.67262192369e-27
  horizon sweep interference --format json`, engine.SweepNames),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.MassKg, "mass", 0, "particle mass in kg for mass-dependent sweeps (default electron)")

	return cmd
}

func runSweep(opts *SweepOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	set, err := LoadConstants(opts.Constants)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConstants, "failed to load constants", err)
	}
	eng, err := engine.New(set, engine.WithLogger(opts.logger(cmd.ErrOrStderr())))
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConstants, "failed to create engine", err)
	}

	series, err := eng.Sweep(name, engine.SweepOptions{MassKg: opts.MassKg})
	if err != nil {
		if errors.Is(err, engine.ErrUnknownSweep) {
			return formatter.fail(ExitCommandError, ErrCodeArgs, "unknown sweep", err)
		}
		return formatter.fail(ExitCommandError, ErrCodeArgs, "invalid sweep", err)
	}
	formatter.VerboseLog("sweep %s: %d points", series.Label, len(series.X))

	if formatter.IsJSON() {
		// Series values may be infinite; IR encoding keeps them valid JSON.
		obj, err := ir.FromStruct(series)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeGeneric, "encode series", err)
		}
		return formatter.Success(obj)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "# %s\n", series.Label)
	for i := range series.X {
		fmt.Fprintf(w, "%s\t%s\n", formatFloat(series.X[i]), formatFloat(series.Y[i]))
	}
	return nil
}
