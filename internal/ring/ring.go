package ring

import (
	"fmt"
	"strconv"
	"strings"
)

// MinLabels is the smallest ring that can play a round: the current label
// plus the three labels it picks up.
const MinLabels = 4

// pickup is the number of labels detached per round.
const pickup = 3

// Ring is a cup ring over the dense label universe {1..N}.
type Ring struct {
	next    []int // next[label] is the clockwise successor; next[0] unused
	current int
	size    int
	rounds  uint64
}

// New builds a ring from labels in clockwise order. The first label becomes
// current.
//
// labels must be a permutation of 1..len(labels) with at least MinLabels
// entries; anything else returns an *InputError. The slice is not retained.
func New(labels []int) (*Ring, error) {
	n := len(labels)
	if n == 0 {
		return nil, NewInputError(ErrCodeEmpty, "label sequence is empty")
	}

	next := make([]int, n+1)
	for i, label := range labels {
		if label < 1 || label > n {
			return nil, &InputError{
				Code:    ErrCodeOutOfRange,
				Message: fmt.Sprintf("label %d outside [1,%d]", label, n),
				Index:   i,
				Label:   label,
			}
		}
		// A successor of 0 only survives until the loop reaches the
		// out-of-range entry that produced it, so non-zero means seen.
		if next[label] != 0 {
			return nil, &InputError{
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("label %d appears more than once", label),
				Index:   i,
				Label:   label,
			}
		}
		next[label] = labels[(i+1)%n]
	}

	if n < MinLabels {
		return nil, NewInputError(ErrCodeTooSmall,
			fmt.Sprintf("ring needs at least %d labels, got %d", MinLabels, n))
	}

	return &Ring{next: next, current: labels[0], size: n}, nil
}

// Round plays one move: detach the three labels after current, reinsert
// them after the destination, and advance current by one.
func (r *Ring) Round() {
	next := r.next
	cur := r.current

	a := next[cur]
	b := next[a]
	c := next[b]
	next[cur] = next[c]

	dest := r.destination(cur, a, b, c)

	// a→b→c stay linked while detached; only the two ends move.
	next[c] = next[dest]
	next[dest] = a

	r.current = next[cur]
	r.rounds++
}

// destination returns the first label below cur (wrapping from 1 to N) that
// is not one of the detached labels. Membership is re-checked on every
// step, so a run of adjacent detached labels is skipped in full.
func (r *Ring) destination(cur, a, b, c int) int {
	d := cur
	for probe := 0; probe <= pickup; probe++ {
		d--
		if d == 0 {
			d = r.size
		}
		if d != a && d != b && d != c {
			return d
		}
	}
	panic(&InvariantError{
		Message: fmt.Sprintf("no destination below %d outside detached {%d,%d,%d}", cur, a, b, c),
		Label:   cur,
		Round:   r.rounds,
	})
}

// Run plays the given number of rounds.
func (r *Ring) Run(rounds uint64) {
	for i := uint64(0); i < rounds; i++ {
		r.Round()
	}
}

// Current returns the label that will pick up cups next round.
func (r *Ring) Current() int {
	return r.current
}

// Size returns N, the number of labels.
func (r *Ring) Size() int {
	return r.size
}

// Rounds returns the number of rounds played since construction.
func (r *Ring) Rounds() uint64 {
	return r.rounds
}

// Next returns the label clockwise of label.
func (r *Ring) Next(label int) int {
	r.mustLabel(label)
	return r.next[label]
}

// TraversalAfter returns the labels clockwise of start, stopping before
// start comes round again.
func (r *Ring) TraversalAfter(start int) []int {
	r.mustLabel(start)
	out := make([]int, 0, r.size-1)
	for l := r.next[start]; l != start; l = r.next[l] {
		if len(out) == r.size-1 {
			panic(&InvariantError{
				Message: fmt.Sprintf("traversal from %d did not return within %d steps", start, r.size),
				Label:   start,
				Round:   r.rounds,
			})
		}
		out = append(out, l)
	}
	return out
}

// Digits renders TraversalAfter(start) as concatenated decimal labels.
func (r *Ring) Digits(start int) string {
	var sb strings.Builder
	for _, l := range r.TraversalAfter(start) {
		sb.WriteString(strconv.Itoa(l))
	}
	return sb.String()
}

// PairAfter returns the two labels immediately clockwise of start.
func (r *Ring) PairAfter(start int) (int, int) {
	r.mustLabel(start)
	first := r.next[start]
	return first, r.next[first]
}

// Checksum returns the product of the two labels after start.
func (r *Ring) Checksum(start int) int64 {
	a, b := r.PairAfter(start)
	return int64(a) * int64(b)
}

// Snapshot returns every label in clockwise order starting at current.
func (r *Ring) Snapshot() []int {
	out := make([]int, 0, r.size)
	out = append(out, r.current)
	return append(out, r.TraversalAfter(r.current)...)
}

func (r *Ring) mustLabel(label int) {
	if label < 1 || label > r.size {
		panic(&InvariantError{
			Message: fmt.Sprintf("label %d outside [1,%d]", label, r.size),
			Label:   label,
			Round:   r.rounds,
		})
	}
}
