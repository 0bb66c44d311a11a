package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cress-bdd/cress/internal/db"
)

const loginFeature = `Feature: Login
  Scenario: User logs in
    Given a user
    When they log in
    Then they see the dashboard
`

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf))
	return buf.String()
}

func TestSync_RegisterNewFeature(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/login.feature", []byte(loginFeature), 0o644))

	out := runSync(t)

	sqlDB, err := db.Open("features/cress.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var name string
	require.NoError(t, sqlDB.QueryRow(`SELECT name FROM features WHERE file_path = ?`, "features/login.feature").Scan(&name))
	assert.Equal(t, "Login", name)
	assert.Contains(t, out, "new  features/login.feature")
	assert.Contains(t, out, "synced 1 files")
}

func TestSync_RegistersScenarios(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/login.feature", []byte(loginFeature), 0o644))

	runSync(t)

	sqlDB, err := db.Open("features/cress.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count))
	assert.Equal(t, 1, count)

	var name string
	var line int
	require.NoError(t, sqlDB.QueryRow(`SELECT name, line FROM scenarios`).Scan(&name, &line))
	assert.Equal(t, "User logs in", name)
	assert.Equal(t, 2, line)
}

func TestSync_SecondRunShowsTracked(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/login.feature", []byte(loginFeature), 0o644))

	runSync(t)
	out := runSync(t)

	assert.Contains(t, out, "trk  features/login.feature")

	sqlDB, err := db.Open("features/cress.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSync_SyntaxErrorReportedAndSkipped(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("features/bad.feature", []byte("Scenario: no feature header\n"), 0o644))
	require.NoError(t, os.WriteFile("features/good.feature", []byte(loginFeature), 0o644))

	out := runSync(t)

	assert.Contains(t, out, "err  features/bad.feature")
	assert.Contains(t, out, "expected 'Feature:'")
	assert.Contains(t, out, "new  features/good.feature")
	assert.Contains(t, out, "synced 1 files")

	sqlDB, err := db.Open("features/cress.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM features`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSync_NoFeatureFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runSync(t)

	assert.Contains(t, out, "synced 0 files")
}

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunSync(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cress init")
}
