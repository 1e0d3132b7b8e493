package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden snapshots live relative to a test package.
const GoldenDir = "testdata/golden"

// GoldenSuffix is the golden file extension.
const GoldenSuffix = ".golden"

// Snapshot returns the bytes a golden file holds for a report: the
// canonical JSON of its Result.
func Snapshot(report *Report) ([]byte, error) {
	if report.Result == nil {
		return nil, fmt.Errorf("scenario produced no result to snapshot")
	}
	return report.Result.Canonical()
}

// RunWithGolden executes a scenario, fails t on any unmet expectation, and
// compares the result against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	report, err := Run(scenario)
	if err != nil {
		return err
	}
	if !report.Pass {
		for _, msg := range report.Errors {
			t.Errorf("%s: %s", scenario.Name, msg)
		}
	}

	data, err := Snapshot(report)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}

// CompareGolden compares a report's snapshot with {dir}/{name}.golden.
// With update set, the golden file is (re)written instead. A missing
// golden file is not an error; ok reports whether a comparison happened.
func CompareGolden(dir, name string, report *Report, update bool) (ok bool, err error) {
	data, err := Snapshot(report)
	if err != nil {
		return false, err
	}
	path := filepath.Join(dir, name+GoldenSuffix)

	if update {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("create golden dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return false, fmt.Errorf("write golden file: %w", err)
		}
		return true, nil
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(want, data) {
		return true, fmt.Errorf("golden mismatch for %s:\nexpected: %s\nactual:   %s", name, want, data)
	}
	return true, nil
}
