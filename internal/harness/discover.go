package harness

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// ConstantsNotFoundError is returned when a scenario references a constant
// set file that doesn't exist.
type ConstantsNotFoundError struct {
	Scenario string
	Path     string
}

// Error implements the error interface.
func (e *ConstantsNotFoundError) Error() string {
	return fmt.Sprintf("scenario %q references constant set %s which does not exist", e.Scenario, e.Path)
}

// FindScenarios returns every .yaml and .yml file under dir, sorted by path.
// A path naming a single file is returned as is.
func FindScenarios(dir string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find scenarios in %s: %w", dir, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// FilterScenarios keeps the paths whose file name contains substr.
// An empty substr keeps everything.
func FilterScenarios(paths []string, substr string) []string {
	if substr == "" {
		return paths
	}
	kept := []string{}
	for _, p := range paths {
		if strings.Contains(filepath.Base(p), substr) {
			kept = append(kept, p)
		}
	}
	return kept
}
