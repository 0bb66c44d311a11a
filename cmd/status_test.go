package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ReportEmpty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusReport(&buf))
	assert.Contains(t, buf.String(), "Scenarios: 0")
}

func TestStatus_ReportCountsByOutcome(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/checkout.feature", []byte(checkoutFeature), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, "1", "passed"))

	buf.Reset()
	require.NoError(t, RunStatusReport(&buf))
	out := buf.String()
	assert.Contains(t, out, "Scenarios: 2")
	assert.Contains(t, out, "passed: 1")
	assert.Contains(t, out, "no-runs: 1")
}

func TestStatus_UpdateRecordsOutcome(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/checkout.feature", []byte(checkoutFeature), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, "1", "failed"))
	assert.Contains(t, buf.String(), "scenario 1: failed")

	buf.Reset()
	require.NoError(t, RunStatusUpdate(&buf, "1", "passed"))
	assert.Contains(t, buf.String(), "scenario 1: failed -> passed")
}

func TestStatus_UpdateUnknownScenario(t *testing.T) {
	inTempDir(t)
	runInit(t)

	var buf bytes.Buffer
	err := RunStatusUpdate(&buf, "42", "passed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 42 not found")
}

func TestStatus_UpdateInvalidID(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunStatusUpdate(&buf, "abc", "passed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario ID")
}

func TestStatus_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunStatusReport(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cress init")
}
