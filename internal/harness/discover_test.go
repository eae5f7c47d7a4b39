package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarios(t *testing.T) {
	paths, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "argument_failures.yaml"), paths[0])
	assert.Equal(t, filepath.Join("testdata", "scenarios", "heavy_sun_horizon.yaml"), paths[1])
	assert.Equal(t, filepath.Join("testdata", "scenarios", "vacuum_and_collapse.yaml"), paths[2])
}

func TestFindScenarios_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yml", "name: a")
	writeScenario(t, dir, "notes.txt", "not a scenario")

	paths, err := FindScenarios(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml")}, paths)
}

func TestFindScenarios_MissingDir(t *testing.T) {
	_, err := FindScenarios(filepath.Join("testdata", "nope"))
	require.Error(t, err)
}

func TestFilterScenarios(t *testing.T) {
	paths := []string{"s/argument_failures.yaml", "s/vacuum_and_collapse.yaml"}

	assert.Equal(t, paths, FilterScenarios(paths, ""))
	assert.Equal(t, []string{"s/vacuum_and_collapse.yaml"}, FilterScenarios(paths, "vacuum"))
	assert.Empty(t, FilterScenarios(paths, "horizon"))
}
