package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/engine"
)

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List registered operations",
		Long: `List every operation invoke accepts, with its parameters.

Numeric parameters carry a domain rule: "positive" and "non_negative"
reject non-finite values, "any" accepts the "+Inf", "-Inf" and "NaN"
encodings.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listOperations(rootOpts, cmd)
		},
	}
	return cmd
}

func listOperations(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ops := engine.Operations()

	if formatter.IsJSON() {
		return formatter.Success(ops)
	}

	w := formatter.Writer
	for _, op := range ops {
		fmt.Fprintf(w, "%s\n  %s\n", op.Name, op.Summary)
		for _, p := range op.Params {
			fmt.Fprintf(w, "    %-20s %s\n", p.Name, describeParam(p))
		}
	}
	return nil
}

func describeParam(p engine.Param) string {
	parts := []string{string(p.Kind)}
	if p.Rule != "" && p.Rule != engine.Any {
		parts = append(parts, string(p.Rule))
	}
	if p.Optional {
		parts = append(parts, "optional")
	}
	return fmt.Sprintf("%s  %s", strings.Join(parts, ", "), p.Doc)
}
