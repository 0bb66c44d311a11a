package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ValidFile(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(loginFeature), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunCheck(&buf, []string{"login.feature"}, false))
	assert.Contains(t, buf.String(), "ok   login.feature")
}

func TestCheck_SyntaxErrorWithCaret(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("bad.feature", []byte("Feature: F\n  Scenario: S\n    Given text:\n      \"\"\"\n      open\n"), 0o644))

	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"bad.feature"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, buf.String(), "bad.feature:4:7: unterminated doc string")
	assert.Contains(t, buf.String(), "^")
}

func TestCheck_ASTDump(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(loginFeature), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunCheck(&buf, []string{"login.feature"}, true))
	assert.Contains(t, buf.String(), "Login")
	assert.Contains(t, buf.String(), "User logs in")
}

func TestCheck_DefaultsToFeaturesDir(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/login.feature", []byte(loginFeature), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunCheck(&buf, nil, false))
	assert.Contains(t, buf.String(), "features/login.feature")
}

func TestCheck_NoFiles(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunCheck(&buf, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no feature files")
}
