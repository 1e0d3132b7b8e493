package game

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/cupgame/internal/ring"
)

// Play builds the ring for spec, plays spec.Rounds rounds and captures the
// readout. The ring invariants are checked once after the run.
//
// Cancelling ctx stops the run between samples; the returned error wraps
// ctx.Err().
func Play(ctx context.Context, spec Spec, ids IDGenerator, opts ...ring.RunOption) (*Result, error) {
	spec.Normalize()
	if _, err := ParseReadout(string(spec.Readout)); err != nil {
		return nil, err
	}

	r, err := spec.Build()
	if err != nil {
		return nil, err
	}
	if err := checkSentinel(spec.Sentinel, r); err != nil {
		return nil, err
	}

	start := time.Now()
	done, err := r.RunContext(ctx, spec.Rounds, opts...)
	if err != nil {
		return nil, fmt.Errorf("stopped after %d of %d rounds: %w", done, spec.Rounds, err)
	}
	elapsed := time.Since(start)

	if err := r.Verify(); err != nil {
		return nil, fmt.Errorf("ring corrupted after %d rounds: %w", done, err)
	}

	res, err := Capture(spec, r)
	if err != nil {
		return nil, err
	}
	res.ID = ids.Generate()
	res.Elapsed = elapsed
	return res, nil
}
