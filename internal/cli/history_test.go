package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cupgame/internal/game"
	"github.com/roach88/cupgame/internal/store"
)

// seedJournal records three runs: two identical example games and one pair game.
func seedJournal(t *testing.T) (dbPath string, digest string) {
	t.Helper()
	dbPath = filepath.Join(t.TempDir(), "runs.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	ids := game.NewFixedGenerator("run-1", "run-2", "run-3")
	specs := []game.Spec{
		{Name: "example", Seed: "389125467", Rounds: 10},
		{Name: "pair", Seed: "389125467", Rounds: 10, Readout: game.ReadoutPair},
		{Name: "example", Seed: "389125467", Rounds: 10},
	}
	for _, spec := range specs {
		res, err := game.Play(ctx, spec, ids)
		require.NoError(t, err)
		require.NoError(t, st.WriteRun(ctx, res))
		if spec.Readout == "" {
			digest = res.Digest
		}
	}
	return dbPath, digest
}

func TestHistoryCommand_Text(t *testing.T) {
	dbPath, _ := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "SEQ")
	assert.Contains(t, stdout, "ANSWER")
	assert.Contains(t, stdout, "92658374")
	assert.Contains(t, stdout, "18")
	assert.NotContains(t, stdout, "DIGEST")
}

func TestHistoryCommand_Verbose(t *testing.T) {
	dbPath, digest := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text", Verbose: true}), "--db", dbPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "DIGEST")
	assert.Contains(t, stdout, "run-2")
	assert.Contains(t, stdout, digest)
}

func TestHistoryCommand_JSONNewestFirst(t *testing.T) {
	dbPath, _ := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", dbPath, "--limit", "2")
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	entries, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)

	first := entries[0].(map[string]any)
	assert.Equal(t, float64(3), first["seq"])
	assert.Equal(t, "run-3", first["result"].(map[string]any)["id"])
}

func TestHistoryCommand_GameFilter(t *testing.T) {
	dbPath, _ := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", dbPath, "--game", "pair")
	require.NoError(t, err)

	entries := decodeResponse(t, stdout).Data.([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "18", entries[0].(map[string]any)["answer"])
}

func TestHistoryCommand_Digest(t *testing.T) {
	dbPath, digest := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", dbPath, "--digest", digest)
	require.NoError(t, err)

	entries := decodeResponse(t, stdout).Data.([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].(map[string]any)["result"].(map[string]any)["id"])
	assert.Equal(t, "run-3", entries[1].(map[string]any)["result"].(map[string]any)["id"])
}

func TestHistoryCommand_ID(t *testing.T) {
	dbPath, _ := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath, "--id", "run-2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pair")
	assert.NotContains(t, stdout, "92658374")
}

func TestHistoryCommand_UnknownID(t *testing.T) {
	dbPath, _ := seedJournal(t)

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath, "--id", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "run not found: nope")
}

func TestHistoryCommand_EmptyJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded.")
}

func TestHistoryCommand_MissingDatabase(t *testing.T) {
	_, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", "/nonexistent/runs.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}

func TestHistoryCommand_RequiresDB(t *testing.T) {
	_, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}
