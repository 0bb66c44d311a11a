package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesFeaturesDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, "features"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, "features/ created")
}

func TestInit_CreatesDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	_, err := os.Stat(filepath.Join(dir, "features", "cress.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "features/cress.db created")
}

func TestInit_IsIdempotent(t *testing.T) {
	inTempDir(t)
	runInit(t)
	out := runInit(t)

	assert.Contains(t, out, "features/ already exists")
	assert.Contains(t, out, "features/cress.db already exists")
}

func TestInit_AddsGitignoreEntry(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "features/cress.db")
	assert.Contains(t, out, ".gitignore created")
}

func TestInit_PreservesExistingGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("vendor/\n"), 0o644))
	runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "vendor/")
	assert.Contains(t, string(data), "features/cress.db")
}
