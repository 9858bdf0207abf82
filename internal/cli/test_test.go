package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: simple
description: One primary change applies after 99
state: {primary: 99}
frames:
  - date: 1000
    records:
      - {kind: read_history_inbox, pts: 100, pts_count: 1, peer_id: 12, max_id: 7}
assertions:
  - type: primary_order
    starts: [100]
  - type: gap
    space: none
`

const failingScenario = `name: wrong_order
description: Asserts a start that never appears
frames:
  - date: 1000
    records:
      - {kind: read_history_inbox, pts: 100, pts_count: 1, peer_id: 12, max_id: 7}
assertions:
  - type: primary_order
    starts: [101]
`

func TestTestCommand_MissingArgs(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_MissingDir(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_EmptyDir(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommand_EmptyDirJSON(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "test", t.TempDir(), "--format", "json")
	require.NoError(t, err)

	r := decodeResponse[TestResult](t, out)
	assert.Equal(t, "ok", r.Status)
	assert.Equal(t, 0, r.Data.Total)
}

func TestTestCommand_AssertionsOnly(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "simple.yaml", passingScenario)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ simple")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "simple.yaml", passingScenario)
	writeTestFile(t, dir, "wrong_order.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	r := decodeResponse[TestResult](t, out)
	require.NotNil(t, r.Error)
	assert.Equal(t, ErrCodeScenario, r.Error.Code)
	assert.Equal(t, 1, r.Data.Passed)
	assert.Equal(t, 1, r.Data.Failed)
}

func TestTestCommand_Filter(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "simple.yaml", passingScenario)
	writeTestFile(t, dir, "wrong_order.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--filter", "sim*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_GoldenLifecycle(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "simple.yaml", passingScenario)
	goldenPath := filepath.Join(dir, "golden", "simple.golden")

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ simple (golden updated)")

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario": "simple"`)
	assert.Contains(t, string(golden), `"window": "test-window-default"`)

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("{}\n"), 0644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "snapshot does not match golden file")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.yaml", "")
	writeTestFile(t, dir, "b.yml", "")
	writeTestFile(t, dir, "notes.txt", "")
	writeTestFile(t, dir, filepath.Join("nested", "c.yaml"), "")
	writeTestFile(t, dir, filepath.Join("golden", "a.yaml"), "")

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, files)

	files, err = findScenarioFiles(dir, "[")
	require.Error(t, err)
	assert.Nil(t, files)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "cart.golden"), goldenFilePath(filepath.Join("scenarios", "cart.yaml")))
}
