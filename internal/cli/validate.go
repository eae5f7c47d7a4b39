package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/ir"
)

// ValidationError is one rejected constant set.
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidatedSet is one accepted constant set.
type ValidatedSet struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	ConstantsHash string `json:"constants_hash"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Sets   []ValidatedSet    `json:"sets"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <constants.cue|dir>",
		Short: "Validate CUE constant sets",
		Long: `Validate CUE constant sets against the #Constants schema.

Every constant must be a strictly positive number; omitted constants take
their CODATA 2018 defaults and unknown fields are rejected. A directory is
checked file by file and every failure is reported.

Exit codes:
  0 - All constant sets valid
  1 - One or more constant sets invalid
  2 - Command error (path not found, no CUE files)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sets, loadErrors := LoadConstantSets(path, LoadModeCollectAll)

	// Nothing loaded and the path itself failed: command error.
	if len(sets) == 0 && len(loadErrors) == 1 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) && isCommandLoadError(loadErr.Code) {
			_ = formatter.Error(loadErr.Code, loadErr.Error(), nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
	}

	result := ValidationResult{Valid: len(loadErrors) == 0, Sets: []ValidatedSet{}}
	for _, ls := range sets {
		hash, err := ir.ConstantsHash(ls.Set.Constants.Fields())
		if err != nil {
			return WrapExitError(ExitCommandError, "hash constants", err)
		}
		formatter.VerboseLog("valid: %s (%s)", ls.Path, ls.Set.Name)
		result.Sets = append(result.Sets, ValidatedSet{Path: ls.Path, Name: ls.Set.Name, ConstantsHash: hash})
	}
	for _, err := range loadErrors {
		result.Errors = append(result.Errors, toValidationError(err))
	}

	if result.Valid {
		if formatter.IsJSON() {
			return formatter.Success(result)
		}
		for _, s := range result.Sets {
			fmt.Fprintf(formatter.Writer, "✓ %s: %s\n", s.Path, s.Name)
		}
		fmt.Fprintln(formatter.Writer, "✓ All constant sets valid")
		return nil
	}

	return outputValidationErrors(formatter, result)
}

func isCommandLoadError(code string) bool {
	switch code {
	case ErrCodeNotFound, ErrCodeNoFiles, ErrCodeScanError:
		return true
	}
	return false
}

func toValidationError(err error) ValidationError {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return ValidationError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	ve := ValidationError{Path: loadErr.Path, Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		ve.Line = loadErr.Pos.Line()
		ve.Column = loadErr.Pos.Column()
	}
	return ve
}

// outputValidationErrors outputs every rejected constant set.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	if formatter.IsJSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s line %d\n", err.Path, err.Line)
		} else {
			fmt.Fprintln(formatter.Writer, err.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
