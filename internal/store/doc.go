// Package store provides a SQLite-backed journal of finished games.
//
// Each row records what was played (seed, size, rounds, sentinel, readout),
// the answer, the full Result as JSON, its content digest and the wall time
// the rounds took. The ring itself is never persisted; a journal entry is
// written only after a run has completed and been verified.
//
// # Ordering
//
// Rows are ordered by seq, an autoincrement column assigned at insert time.
// Reads always ORDER BY seq so listings are stable.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Schema changes are applied through PRAGMA user_version migrations.
package store
