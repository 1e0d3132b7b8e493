package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harnessScenarios is the conformance suite shipped with the harness package.
const harnessScenarios = "../harness/testdata/scenarios"

const passingScenario = `name: ten_rounds
description: worked example after ten rounds
seed: "389125467"
rounds: 10
expect:
  digits: "92658374"
`

const failingScenario = `name: wrong_digits
description: expects the wrong answer
seed: "389125467"
rounds: 10
expect:
  digits: "12345678"
`

func writeScenario(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "ok", decodeResponse(t, stdout).Status)
}

func TestTestCommand_HarnessSuite(t *testing.T) {
	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), harnessScenarios, "--short")
	require.NoError(t, err, stdout)

	assert.Contains(t, stdout, "✓ example_ten_rounds (golden)")
	assert.Contains(t, stdout, "✓ reject_duplicate\n")
	assert.Contains(t, stdout, "- million (skipped: long)")
	assert.Contains(t, stdout, "Test Summary: 10 passed, 0 failed, 1 skipped, 11 total")
}

func TestTestCommand_HarnessSuiteJSON(t *testing.T) {
	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), harnessScenarios, "--short", "--filter", "wrap_*")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	data := dataMap(t, resp)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(2), data["passed"])
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "ten_rounds.yaml", passingScenario)
	writeScenario(t, dir, "wrong_digits.yaml", failingScenario)

	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "✓ ten_rounds\n")
	assert.Contains(t, stdout, "✗ wrong_digits")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 0 skipped, 2 total")
}

func TestTestCommand_FailingScenarioJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "wrong_digits.yaml", failingScenario)

	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "broken.yaml", "name: broken\nunknown_field: 1\n")

	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "Load error")
}

func TestTestCommand_UpdateThenCompareGolden(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	writeScenario(t, dir, "ten_rounds.yaml", passingScenario)

	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ ten_rounds (golden updated)")

	golden, err := os.ReadFile(filepath.Join(root, "golden", "ten_rounds.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"order":[9,2,6,5,8,3,7,4]`)

	stdout, _, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ ten_rounds (golden)")
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	goldenDir := filepath.Join(root, "snapshots")
	writeScenario(t, dir, "ten_rounds.yaml", passingScenario)
	writeScenario(t, goldenDir, "ten_rounds.golden", `{"order":[1]}`)

	stdout, _, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--golden", goldenDir)
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ ten_rounds")
	assert.Contains(t, stdout, "golden mismatch")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", passingScenario)
	writeScenario(t, dir, "a.yml", passingScenario)
	writeScenario(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.yaml"), 0755))

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, files)

	files, err = findScenarioFiles(dir, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.yaml")}, files)

	_, err = findScenarioFiles(dir, "[")
	assert.Error(t, err)
}
