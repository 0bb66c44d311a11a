package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkoutFeature = `Feature: Checkout
  Scenario: Pay by card
    Given a cart

  Scenario: Pay by invoice
    Given a cart
`

func runList(t *testing.T, outcome string, noRuns bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, outcome, noRuns))
	return buf.String()
}

func TestList_ShowsTrackedScenarios(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/checkout.feature", []byte(checkoutFeature), 0o644))
	runSync(t)

	out := runList(t, "", false)

	assert.Contains(t, out, "checkout.feature")
	assert.Contains(t, out, "Pay by card")
	assert.Contains(t, out, "Pay by invoice")
	assert.Contains(t, out, "no-runs")
}

func TestList_FilterByOutcome(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/checkout.feature", []byte(checkoutFeature), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, "1", "passed"))

	out := runList(t, "passed", false)
	assert.Contains(t, out, "Pay by card")
	assert.NotContains(t, out, "Pay by invoice")
}

func TestList_NoRunsFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/checkout.feature", []byte(checkoutFeature), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunStatusUpdate(&buf, "1", "passed"))

	out := runList(t, "", true)
	assert.NotContains(t, out, "Pay by card")
	assert.Contains(t, out, "Pay by invoice")
}

func TestList_EmptyDatabase(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runList(t, "", false)
	assert.Empty(t, out)
}

func TestList_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunList(&buf, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cress init")
}
