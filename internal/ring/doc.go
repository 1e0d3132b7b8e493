// Package ring implements the cup ring engine.
//
// A ring holds N distinct labels drawn from the dense universe {1..N}. Each
// round detaches the three labels after the current label, searches
// downwards from current-1 for a destination that is not one of them, and
// splices the trio back in directly after the destination.
//
// REPRESENTATION:
//
// The ring is a label-indexed successor slice: next[label] is the label that
// follows it clockwise. Index 0 is unused. Because labels are dense, every
// step of a round (find current, detach, find destination, splice) is a
// constant number of slice reads and writes, independent of N.
//
// The slice is allocated once in New and never grows. A Ring is not safe for
// concurrent use; run independent experiments on independent rings.
//
// INVARIANTS:
//
//   - next is a bijection on {1..N} whose functional graph is one N-cycle
//   - current is always a member of the ring
//   - only Round mutates next, and it never splits the cycle
//
// Verify checks the invariants in O(N) and is intended for tests and for a
// driver's post-run sanity check, never for the hot loop.
package ring
