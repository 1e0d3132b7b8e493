package game

import (
	"fmt"

	"github.com/roach88/cupgame/internal/ring"
	"github.com/roach88/cupgame/internal/seed"
)

// Readout selects how a finished ring is reported.
type Readout string

const (
	// ReadoutOrder reports every label after the sentinel.
	ReadoutOrder Readout = "order"

	// ReadoutPair reports the two labels after the sentinel and their product.
	ReadoutPair Readout = "pair"
)

// ValidReadouts lists the accepted readout modes.
var ValidReadouts = []Readout{ReadoutOrder, ReadoutPair}

// ParseReadout validates a readout name.
func ParseReadout(s string) (Readout, error) {
	for _, r := range ValidReadouts {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid readout %q: must be one of %v", s, ValidReadouts)
}

// DefaultSentinel is the label readouts start after.
const DefaultSentinel = 1

// Spec describes one game.
type Spec struct {
	// Name identifies the game in reports and the run journal. Optional.
	Name string `json:"name,omitempty"`

	// Seed is the puzzle text: one digit per label.
	Seed string `json:"seed"`

	// Size is the label universe after extension. Zero means the seed
	// alone defines the universe.
	Size int `json:"size,omitempty"`

	// Rounds is the number of rounds to play.
	Rounds uint64 `json:"rounds"`

	// Readout selects order or pair reporting. Empty means order.
	Readout Readout `json:"readout,omitempty"`

	// Sentinel is the label readouts start after. Zero means DefaultSentinel.
	Sentinel int `json:"sentinel,omitempty"`
}

// Normalize fills defaulted fields in place.
func (s *Spec) Normalize() {
	if s.Readout == "" {
		s.Readout = ReadoutOrder
	}
	if s.Sentinel == 0 {
		s.Sentinel = DefaultSentinel
	}
}

// Build parses and extends the seed and constructs the ring.
func (s Spec) Build() (*ring.Ring, error) {
	labels, err := seed.Parse(s.Seed)
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	labels, err = seed.Extend(labels, s.Size)
	if err != nil {
		return nil, fmt.Errorf("extend seed: %w", err)
	}
	r, err := ring.New(labels)
	if err != nil {
		return nil, fmt.Errorf("build ring: %w", err)
	}
	return r, nil
}
