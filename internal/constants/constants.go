// Package constants loads physical constant sets written in CUE.
//
// A constant set file declares a `constants` struct that is unified with the
// embedded #Constants schema. Omitted fields take their CODATA 2018 defaults,
// unknown fields are rejected and every value must be strictly positive:
//
//	package constants
//
//	constants: {
//		name:     "heavy-sun"
//		sun_mass: 2 * 1.98847e30
//	}
//
// Load accepts either a single .cue file or a directory holding one CUE
// package.
package constants

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/horizon/internal/units"
)

//go:embed schema.cue
var schemaSource string

// DefaultName names the built-in CODATA set.
const DefaultName = "codata2018"

// Set is a named, validated constant table.
type Set struct {
	Name      string                  `json:"name"`
	Constants units.PhysicalConstants `json:"constants"`
}

// Error is a constant set failure, positioned in the CUE source when known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the CODATA set the schema defaults to.
func Default() Set {
	return Set{Name: DefaultName, Constants: units.CODATA()}
}

// Load reads a constant set from a .cue file or a CUE package directory.
// An empty path returns Default.
func Load(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return Set{}, fmt.Errorf("constant set %s: %w", path, err)
	}

	ctx := cuecontext.New()
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return Set{}, fmt.Errorf("reading constant set: %w", err)
		}
		return compile(ctx, ctx.CompileBytes(data, cue.Filename(path)))
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return Set{}, &Error{Field: "load", Message: fmt.Sprintf("no CUE instances in %s", path)}
	}
	if err := instances[0].Err; err != nil {
		return Set{}, formatCUEError(err)
	}
	return compile(ctx, ctx.BuildInstance(instances[0]))
}

// CompileString parses a constant set from CUE source. filename only labels
// error positions.
func CompileString(src, filename string) (Set, error) {
	ctx := cuecontext.New()
	return compile(ctx, ctx.CompileString(src, cue.Filename(filename)))
}

func compile(ctx *cue.Context, v cue.Value) (Set, error) {
	if err := v.Err(); err != nil {
		return Set{}, formatCUEError(err)
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Set{}, fmt.Errorf("embedded schema: %w", err)
	}

	body := v.LookupPath(cue.ParsePath("constants"))
	if !body.Exists() {
		return Set{}, &Error{
			Field:   "constants",
			Message: "constants struct is required",
			Pos:     v.Pos(),
		}
	}

	unified := schema.LookupPath(cue.ParsePath("#Constants")).Unify(body)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Set{}, formatCUEError(err)
	}

	name, err := unified.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return Set{}, formatCUEError(err)
	}

	var pc units.PhysicalConstants
	if err := unified.Decode(&pc); err != nil {
		return Set{}, formatCUEError(err)
	}
	if err := pc.Validate(); err != nil {
		return Set{}, &Error{Field: "constants", Message: err.Error(), Pos: body.Pos()}
	}

	return Set{Name: name, Constants: pc}, nil
}

// FindCUEFiles lists the .cue files directly inside dir, sorted by name.
func FindCUEFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// formatCUEError keeps the first CUE error and its source position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
