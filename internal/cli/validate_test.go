package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidateCmd(t *testing.T, format string, path string) (string, error) {
	t.Helper()
	cmd := NewValidateCommand(&RootOptions{Format: format})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return buf.String(), err
}

func writeCUE(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestValidateCommand_ValidFile(t *testing.T) {
	out, err := runValidateCmd(t, "text", filepath.Join("..", "constants", "testdata", "heavy_sun.cue"))
	require.NoError(t, err)

	assert.Contains(t, out, "heavy-sun")
	assert.Contains(t, out, "✓ All constant sets valid")
}

func TestValidateCommand_ValidDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeCUE(t, dir, "a.cue", "package constants\n\nconstants: {name: \"a\"}\n")
	writeCUE(t, dir, "b.cue", "package constants\n\nconstants: {name: \"b\", G: 6.7e-11}\n")

	out, err := runValidateCmd(t, "json", dir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.Len(t, resp.Data.Sets, 2)
	assert.Equal(t, "a", resp.Data.Sets[0].Name)
	assert.Len(t, resp.Data.Sets[0].ConstantsHash, 64)
	assert.NotEqual(t, resp.Data.Sets[0].ConstantsHash, resp.Data.Sets[1].ConstantsHash)
}

func TestValidateCommand_CollectsAllErrors(t *testing.T) {
	out, err := runValidateCmd(t, "json", filepath.Join("..", "constants", "testdata"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Len(t, resp.Data.Sets, 1)
	require.Len(t, resp.Data.Errors, 2)
	for _, ve := range resp.Data.Errors {
		assert.NotEmpty(t, ve.Code)
		assert.NotEmpty(t, ve.Path)
	}
}

func TestValidateCommand_TextErrorReportsLine(t *testing.T) {
	out, err := runValidateCmd(t, "text", filepath.Join("..", "constants", "testdata", "negative_c.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "negative_c.cue line")
}

func TestValidateCommand_CommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode string
	}{
		{"missing path", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.cue") }, ErrCodeNotFound},
		{"empty directory", func(t *testing.T) string { return t.TempDir() }, ErrCodeNoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runValidateCmd(t, "text", tt.path(t))
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestLoadConstantSets_FailFast(t *testing.T) {
	sets, errs := LoadConstantSets(filepath.Join("..", "constants", "testdata"), LoadModeFailFast)
	assert.Len(t, errs, 1)
	assert.LessOrEqual(t, len(sets), 1)
}

func TestLoadConstants(t *testing.T) {
	set, err := LoadConstants("")
	require.NoError(t, err)
	assert.Equal(t, "codata2018", set.Name)

	_, err = LoadConstants(filepath.Join("..", "constants", "testdata", "unknown_field.cue"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "hbar_bar")

	_, err = LoadConstants("missing.cue")
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}
