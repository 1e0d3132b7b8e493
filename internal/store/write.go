package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/cupgame/internal/game"
)

// WriteRun appends a finished run to the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run
// twice is silently ignored.
func (s *Store) WriteRun(ctx context.Context, res *game.Result) error {
	if res.ID == "" {
		return fmt.Errorf("write run: result has no id")
	}

	resultJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, game, seed, size, rounds, sentinel, readout, answer, result, digest, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		res.ID,
		res.Game,
		res.Seed,
		res.Size,
		int64(res.Rounds),
		res.Sentinel,
		string(res.Readout),
		res.Answer(),
		string(resultJSON),
		res.Digest,
		int64(res.Elapsed),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
