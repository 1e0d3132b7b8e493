package testutil

import (
	"sync"

	"github.com/roach88/cupgame/internal/ring"
)

// ProgressRecorder is a ring.Observer that keeps every sample it receives.
//
// It can be reset, so one recorder can follow several runs in a test.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ProgressRecorder struct {
	mu      sync.Mutex
	samples []ring.Progress
}

// NewProgressRecorder creates an empty recorder.
func NewProgressRecorder() *ProgressRecorder {
	return &ProgressRecorder{}
}

// Observe implements ring.Observer.
func (r *ProgressRecorder) Observe(p ring.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, p)
}

// Samples returns a copy of the samples received so far.
func (r *ProgressRecorder) Samples() []ring.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ring.Progress(nil), r.samples...)
}

// Done returns the Done count of every sample, in order.
func (r *ProgressRecorder) Done() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	done := make([]uint64, len(r.samples))
	for i, p := range r.samples {
		done[i] = p.Done
	}
	return done
}

// Last returns the most recent sample and whether there was one.
func (r *ProgressRecorder) Last() (ring.Progress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) == 0 {
		return ring.Progress{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Reset discards every recorded sample.
func (r *ProgressRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = nil
}
