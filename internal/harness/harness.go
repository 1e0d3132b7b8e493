package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/cupgame/internal/game"
	"github.com/roach88/cupgame/internal/ring"
	"github.com/roach88/cupgame/internal/testutil"
)

// scenarioRunID is the run ID stamped on every harness result.
const scenarioRunID = "scenario"

// Run executes a scenario and returns its report.
//
// Expectation mismatches are reported through Report.Errors; the returned
// error is reserved for scenarios that cannot be executed at all.
func Run(s *Scenario) (*Report, error) {
	if err := validateScenario(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	spec := s.Spec()
	report := NewReport()
	ids := testutil.NewConstantIDGenerator(scenarioRunID)

	r, err := spec.Build()
	if s.Expect.Error != "" {
		checkRejection(report, s.Expect.Error, err)
		return report, nil
	}
	if err != nil {
		report.AddError("construction failed: %v", err)
		return report, nil
	}

	if !play(report, r, s.Rounds, s.VerifyEvery) {
		return report, nil
	}

	res, err := game.Capture(spec, r)
	if err != nil {
		report.AddError("readout failed: %v", err)
		return report, nil
	}
	res.ID = ids.Generate()
	report.Result = res

	checkReadouts(report, s.Expect, spec.Sentinel, r)
	return report, nil
}

// play runs the ring, verifying invariants every verifyEvery rounds (or
// once at the end). It returns false if an invariant was violated.
func play(report *Report, r *ring.Ring, rounds, verifyEvery uint64) bool {
	step := rounds
	if verifyEvery > 0 {
		step = verifyEvery
	}

	var done uint64
	for done < rounds {
		chunk := min(step, rounds-done)
		r.Run(chunk)
		done += chunk
		if err := r.Verify(); err != nil {
			report.AddError("after %d rounds: %v", done, err)
			return false
		}
	}
	if rounds == 0 {
		if err := r.Verify(); err != nil {
			report.AddError("before any round: %v", err)
			return false
		}
	}
	return true
}

func checkRejection(report *Report, want string, err error) {
	if err == nil {
		report.AddError("expected construction to fail with %s, but it succeeded", want)
		return
	}
	if got := ring.InputErrorCodeOf(err); string(got) != want {
		report.AddError("expected error %s, got %v", want, err)
	}
}

func checkReadouts(report *Report, want Expect, sentinel int, r *ring.Ring) {
	if want.Order != nil {
		if got := r.TraversalAfter(sentinel); !slices.Equal(got, want.Order) {
			report.AddError("order after %d: expected %v, got %v", sentinel, want.Order, got)
		}
	}
	if want.Digits != "" {
		if got := r.Digits(sentinel); got != want.Digits {
			report.AddError("digits after %d: expected %s, got %s", sentinel, want.Digits, got)
		}
	}
	if want.Pair != nil {
		a, b := r.PairAfter(sentinel)
		if got := []int{a, b}; !slices.Equal(got, want.Pair) {
			report.AddError("pair after %d: expected %v, got %v", sentinel, want.Pair, got)
		}
	}
	if want.Checksum != 0 {
		if got := r.Checksum(sentinel); got != want.Checksum {
			report.AddError("checksum after %d: expected %d, got %d", sentinel, want.Checksum, got)
		}
	}
	if want.Current != 0 {
		if got := r.Current(); got != want.Current {
			report.AddError("current: expected %d, got %d", want.Current, got)
		}
	}
}
