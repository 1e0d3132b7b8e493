package ring

import "context"

// DefaultSampleEvery is how many rounds RunContext plays between
// cancellation checks and observer notifications.
const DefaultSampleEvery uint64 = 1 << 16

// Progress is a sampled view of a long run.
type Progress struct {
	// Done is the number of rounds completed by this run.
	Done uint64

	// Total is the number of rounds requested.
	Total uint64

	// Current is the ring's current label at the sample point.
	Current int
}

// Observer receives sampled progress from RunContext. Observe is called
// between rounds, on the goroutine running the ring.
type Observer interface {
	Observe(Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Progress)

// Observe calls f(p).
func (f ObserverFunc) Observe(p Progress) {
	f(p)
}

// RunOption configures RunContext.
type RunOption func(*runConfig)

type runConfig struct {
	observer    Observer
	sampleEvery uint64
}

// WithObserver reports progress to o every sample interval and once at the
// end of the run.
func WithObserver(o Observer) RunOption {
	return func(c *runConfig) {
		c.observer = o
	}
}

// WithSampleEvery sets the sample interval. Zero keeps the default.
func WithSampleEvery(n uint64) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.sampleEvery = n
		}
	}
}

// RunContext plays up to rounds rounds, stopping early if ctx is cancelled.
// Cancellation is only observed between sample intervals. It returns the
// number of rounds completed and ctx.Err() if the run stopped early.
func (r *Ring) RunContext(ctx context.Context, rounds uint64, opts ...RunOption) (uint64, error) {
	cfg := runConfig{sampleEvery: DefaultSampleEvery}
	for _, opt := range opts {
		opt(&cfg)
	}

	var done uint64
	for done < rounds {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		chunk := min(cfg.sampleEvery, rounds-done)
		r.Run(chunk)
		done += chunk

		if cfg.observer != nil && done < rounds {
			cfg.observer.Observe(Progress{Done: done, Total: rounds, Current: r.current})
		}
	}

	if cfg.observer != nil {
		cfg.observer.Observe(Progress{Done: done, Total: rounds, Current: r.current})
	}
	return done, nil
}
