package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/horizon/internal/constants"
)

// LoadMode controls how errors are handled when loading several constant sets.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadedSet is a constant set together with the file it came from.
type LoadedSet struct {
	Path string
	Set  constants.Set
}

// LoadError represents an error that occurred while loading a constant set.
type LoadError struct {
	Path    string
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants for constant set loading.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeScanError  = "E002" // Directory scan error
	ErrCodeNoFiles    = "E003" // No CUE files found
	ErrCodeLoadFailed = "E004" // CUE load failed
	ErrCodeNotFound   = "E005" // Path not found

	ErrCodeSchema        = "E101" // Value rejected by the #Constants schema
	ErrCodeConstantsBody = "E102" // Missing or physically invalid constants struct
)

// LoadConstants loads the constant set at path. An empty path is the
// built-in CODATA set.
func LoadConstants(path string) (constants.Set, error) {
	set, err := constants.Load(path)
	if err != nil {
		return constants.Set{}, convertConstantsError(path, err)
	}
	return set, nil
}

// LoadConstantSets loads every constant set under path: the file itself, or
// each .cue file directly inside a directory. In LoadModeFailFast it returns
// at the first failing file.
func LoadConstantSets(path string, mode LoadMode) ([]LoadedSet, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Path: path, Code: ErrCodeNotFound, Message: "constant set not found"}}
	}
	if err != nil {
		return nil, []error{&LoadError{Path: path, Code: ErrCodeNotFound, Message: err.Error()}}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = constants.FindCUEFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Path: path, Code: ErrCodeScanError, Message: err.Error()}}
		}
		if len(files) == 0 {
			return nil, []error{&LoadError{Path: path, Code: ErrCodeNoFiles, Message: "no CUE files found"}}
		}
	}

	var (
		sets []LoadedSet
		errs []error
	)
	for _, file := range files {
		set, err := LoadConstants(file)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return sets, errs
			}
			continue
		}
		sets = append(sets, LoadedSet{Path: file, Set: set})
	}
	return sets, errs
}

// convertConstantsError maps a constants package error to a LoadError with
// position info.
func convertConstantsError(path string, err error) *LoadError {
	if errors.Is(err, os.ErrNotExist) {
		return &LoadError{Path: path, Code: ErrCodeNotFound, Message: "constant set not found"}
	}

	var cerr *constants.Error
	if errors.As(err, &cerr) {
		code := ErrCodeSchema
		switch cerr.Field {
		case "constants":
			code = ErrCodeConstantsBody
		case "load":
			code = ErrCodeLoadFailed
		}
		return &LoadError{Path: path, Code: code, Message: cerr.Message, Pos: cerr.Pos}
	}

	return &LoadError{Path: path, Code: ErrCodeGeneric, Message: err.Error()}
}
