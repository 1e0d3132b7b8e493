// Package game drives the ring engine for one configured game and captures
// the outcome as a Result.
//
// A Spec names the seed, the label universe size, the number of rounds and
// how to read the ring afterwards. Play builds the ring through the seed
// adapter, runs it, checks the ring invariants and records the readout.
//
// # Identity
//
// Every Result carries two identifiers:
//   - ID: a UUIDv7 minted per run (time-sortable, unique per execution)
//   - Digest: SHA-256 over the canonical JSON of the deterministic fields
//
// Two runs of the same Spec always share a Digest, which is what the
// harness and the run journal compare on.
package game
