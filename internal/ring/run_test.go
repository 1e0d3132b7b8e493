package ring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContext_MatchesRun(t *testing.T) {
	plain := newExampleRing(t)
	plain.Run(100)

	sampled := newExampleRing(t)
	done, err := sampled.RunContext(context.Background(), 100, WithSampleEvery(7))
	require.NoError(t, err)

	assert.Equal(t, uint64(100), done)
	assert.Equal(t, plain.Snapshot(), sampled.Snapshot())
}

func TestRunContext_ObserverIsSampled(t *testing.T) {
	r := newExampleRing(t)

	var seen []uint64
	obs := ObserverFunc(func(p Progress) {
		assert.Equal(t, uint64(10), p.Total)
		seen = append(seen, p.Done)
	})

	done, err := r.RunContext(context.Background(), 10, WithObserver(obs), WithSampleEvery(3))
	require.NoError(t, err)

	assert.Equal(t, uint64(10), done)
	assert.Equal(t, []uint64{3, 6, 9, 10}, seen)
}

func TestRunContext_ZeroRounds(t *testing.T) {
	r := newExampleRing(t)

	var calls int
	done, err := r.RunContext(context.Background(), 0, WithObserver(ObserverFunc(func(Progress) { calls++ })))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), done)
	assert.Equal(t, 1, calls, "final progress is still reported")
	assert.Equal(t, exampleLabels, r.Snapshot())
}

func TestRunContext_CancelledBeforeStart(t *testing.T) {
	r := newExampleRing(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done, err := r.RunContext(ctx, 1000)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), done)
	assert.Equal(t, uint64(0), r.Rounds())
}

func TestRunContext_CancelBetweenSamples(t *testing.T) {
	r := newExampleRing(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := ObserverFunc(func(Progress) { cancel() })
	done, err := r.RunContext(ctx, 100, WithObserver(obs), WithSampleEvery(4))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(4), done)
	assert.Equal(t, uint64(4), r.Rounds())
	require.NoError(t, r.Verify())
}
