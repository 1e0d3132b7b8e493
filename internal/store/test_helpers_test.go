package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/cupgame/internal/game"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResult creates an order-readout result with a fixed digest.
func createTestResult(id, gameName, digest string) *game.Result {
	return &game.Result{
		ID:       id,
		Game:     gameName,
		Seed:     "389125467",
		Size:     9,
		Rounds:   10,
		Sentinel: 1,
		Readout:  game.ReadoutOrder,
		Order:    []int{9, 2, 6, 5, 8, 3, 7, 4},
		Digits:   "92658374",
		Digest:   digest,
		Elapsed:  3 * time.Millisecond,
	}
}
