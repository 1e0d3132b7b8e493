package ring

import "fmt"

// Verify checks that the successor mapping is one cycle through all N
// labels and that current lies on it. It walks the whole ring and returns
// an *InvariantError describing the first problem found.
func (r *Ring) Verify() error {
	if len(r.next) != r.size+1 {
		return &InvariantError{
			Message: fmt.Sprintf("successor index has %d slots, want %d", len(r.next), r.size+1),
			Round:   r.rounds,
		}
	}
	if r.current < 1 || r.current > r.size {
		return &InvariantError{Message: "current is not a ring label", Label: r.current, Round: r.rounds}
	}

	seen := make([]bool, r.size+1)
	l := r.current
	for step := 0; step < r.size; step++ {
		if seen[l] {
			return &InvariantError{
				Message: fmt.Sprintf("label revisited after %d of %d steps", step, r.size),
				Label:   l,
				Round:   r.rounds,
			}
		}
		seen[l] = true
		succ := r.next[l]
		if succ < 1 || succ > r.size {
			return &InvariantError{
				Message: fmt.Sprintf("successor %d outside [1,%d]", succ, r.size),
				Label:   l,
				Round:   r.rounds,
			}
		}
		if succ == l {
			return &InvariantError{Message: "label maps to itself", Label: l, Round: r.rounds}
		}
		l = succ
	}
	if l != r.current {
		return &InvariantError{
			Message: fmt.Sprintf("walk of %d steps ended at %d, not current", r.size, l),
			Label:   r.current,
			Round:   r.rounds,
		}
	}
	return nil
}
