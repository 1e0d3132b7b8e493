// Package seed turns puzzle text into ring labels.
//
// Puzzle input is a single line of digits, one label per digit, in clockwise
// order. Extend fills the rest of a larger universe with ascending labels so
// the result is still dense and can be handed to ring.New.
package seed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/cupgame/internal/ring"
)

// Parse converts a digit string into labels. Surrounding whitespace is
// ignored. Range and uniqueness checks are left to ring.New.
func Parse(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ring.NewInputError(ring.ErrCodeEmpty, "seed is empty")
	}

	labels := make([]int, 0, len(text))
	for i, ch := range text {
		if ch < '0' || ch > '9' {
			return nil, &ring.InputError{
				Code:    ring.ErrCodeBadDigit,
				Message: fmt.Sprintf("seed character %q is not a digit", ch),
				Index:   i,
			}
		}
		labels = append(labels, int(ch-'0'))
	}
	return labels, nil
}

// Read parses the first non-blank line of r.
func Read(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return Parse(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return nil, ring.NewInputError(ring.ErrCodeEmpty, "seed input has no labels")
}

// ReadFile parses the seed stored in the puzzle input file at path.
func ReadFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Format renders labels back into puzzle text.
func Format(labels []int) string {
	var sb strings.Builder
	for _, l := range labels {
		sb.WriteString(strconv.Itoa(l))
	}
	return sb.String()
}

// Extend returns labels followed by max(labels)+1 .. size in ascending
// order. A size of 0, or one equal to len(labels), returns a copy of labels.
//
// size must be at least len(labels) and at least max(labels); otherwise the
// universe could not be dense and an *ring.InputError is returned.
func Extend(labels []int, size int) ([]int, error) {
	if len(labels) == 0 {
		return nil, ring.NewInputError(ring.ErrCodeEmpty, "seed is empty")
	}
	if size == 0 {
		size = len(labels)
	}
	if size < len(labels) {
		return nil, ring.NewInputError(ring.ErrCodeBadSize,
			fmt.Sprintf("size %d is smaller than the %d seed labels", size, len(labels)))
	}

	highest := labels[0]
	for _, l := range labels[1:] {
		highest = max(highest, l)
	}
	if size < highest {
		return nil, ring.NewInputError(ring.ErrCodeBadSize,
			fmt.Sprintf("size %d is smaller than seed label %d", size, highest))
	}

	out := make([]int, 0, len(labels)+size-highest)
	out = append(out, labels...)
	for l := highest + 1; l <= size; l++ {
		out = append(out, l)
	}
	return out, nil
}
