package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cupgame/internal/game"
)

func TestOpen_AppliesPragmasAndVersion(t *testing.T) {
	s := createTestStore(t)

	require.NoError(t, s.verifyPragma("journal_mode", "wal"))
	require.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	require.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.WriteRun(context.Background(), createTestResult("run-1", "example", "d1")))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.ListRuns(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestResult("run-1", "example", "d1")

	require.NoError(t, s.WriteRun(ctx, want))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "92658374", got.Answer)
	assert.Equal(t, *want, got.Result)
}

func TestWriteRun_PairReadout(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	res := &game.Result{
		ID:       "run-2",
		Seed:     "389125467",
		Size:     1000000,
		Rounds:   10000000,
		Sentinel: 1,
		Readout:  game.ReadoutPair,
		Pair:     []int{934001, 159792},
		Checksum: 149245887792,
		Digest:   "d2",
	}

	require.NoError(t, s.WriteRun(ctx, res))

	got, err := s.ReadRun(ctx, "run-2")
	require.NoError(t, err)
	assert.Equal(t, "149245887792", got.Answer)
	assert.Equal(t, int64(149245887792), got.Result.Checksum)
}

func TestWriteRun_DuplicateIgnored(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestResult("run-1", "example", "d1")))
	require.NoError(t, s.WriteRun(ctx, createTestResult("run-1", "renamed", "d9")))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "example", got.Result.Game, "first write wins")
}

func TestWriteRun_RequiresID(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteRun(context.Background(), createTestResult("", "example", "d1"))
	assert.Error(t, err)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, s.WriteRun(ctx, createTestResult(id, "example", "d1")))
	}

	runs, err := s.ListRuns(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].Result.ID)
	assert.Equal(t, "run-2", runs[1].Result.ID)
	assert.Greater(t, runs[0].Seq, runs[1].Seq)
}

func TestListRuns_FilterByGame(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestResult("run-1", "example", "d1")))
	require.NoError(t, s.WriteRun(ctx, createTestResult("run-2", "original", "d2")))

	runs, err := s.ListRuns(ctx, "original", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].Result.ID)

	none, err := s.ListRuns(ctx, "unknown", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindByDigest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestResult("run-1", "example", "same")))
	require.NoError(t, s.WriteRun(ctx, createTestResult("run-2", "example", "other")))
	require.NoError(t, s.WriteRun(ctx, createTestResult("run-3", "example", "same")))

	runs, err := s.FindByDigest(ctx, "same")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].Result.ID)
	assert.Equal(t, "run-3", runs[1].Result.ID)
}
