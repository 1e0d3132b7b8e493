package game

import (
	"fmt"
	"time"

	"github.com/roach88/cupgame/internal/ring"
)

// maxDigitLabel is the largest label Digits can render unambiguously.
const maxDigitLabel = 9

// Result is the outcome of one played game.
type Result struct {
	ID       string  `json:"id"`
	Game     string  `json:"game,omitempty"`
	Seed     string  `json:"seed"`
	Size     int     `json:"size"`
	Rounds   uint64  `json:"rounds"`
	Sentinel int     `json:"sentinel"`
	Readout  Readout `json:"readout"`

	// Order holds every label after the sentinel (order readout).
	Order []int `json:"order,omitempty"`

	// Digits is Order concatenated, set only when every label is a single digit.
	Digits string `json:"digits,omitempty"`

	// Pair holds the two labels after the sentinel (pair readout).
	Pair []int `json:"pair,omitempty"`

	// Checksum is the product of Pair (pair readout).
	Checksum int64 `json:"checksum,omitempty"`

	// Digest is the content hash of the deterministic fields above.
	Digest string `json:"digest"`

	Elapsed time.Duration `json:"elapsed_ns"`
}

// Capture reads r according to spec and fills in the digest. ID and Elapsed
// are left to the caller.
func Capture(spec Spec, r *ring.Ring) (*Result, error) {
	spec.Normalize()
	if err := checkSentinel(spec.Sentinel, r); err != nil {
		return nil, err
	}

	res := &Result{
		Game:     spec.Name,
		Seed:     spec.Seed,
		Size:     r.Size(),
		Rounds:   r.Rounds(),
		Sentinel: spec.Sentinel,
		Readout:  spec.Readout,
	}

	switch spec.Readout {
	case ReadoutOrder:
		res.Order = r.TraversalAfter(spec.Sentinel)
		if r.Size() <= maxDigitLabel {
			res.Digits = r.Digits(spec.Sentinel)
		}
	case ReadoutPair:
		a, b := r.PairAfter(spec.Sentinel)
		res.Pair = []int{a, b}
		res.Checksum = r.Checksum(spec.Sentinel)
	default:
		return nil, fmt.Errorf("capture: unknown readout %q", spec.Readout)
	}

	digest, err := res.ComputeDigest()
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	res.Digest = digest
	return res, nil
}

// Canonical returns the canonical JSON of the deterministic fields. ID,
// Elapsed and Digest itself are excluded.
func (r *Result) Canonical() ([]byte, error) {
	obj := map[string]any{
		"seed":     r.Seed,
		"size":     r.Size,
		"rounds":   r.Rounds,
		"sentinel": r.Sentinel,
		"readout":  r.Readout,
	}
	if r.Game != "" {
		obj["game"] = r.Game
	}
	if r.Order != nil {
		obj["order"] = r.Order
	}
	if r.Pair != nil {
		obj["pair"] = r.Pair
		obj["checksum"] = r.Checksum
	}
	return marshalCanonical(obj)
}

// ComputeDigest hashes Canonical() under DomainResult.
func (r *Result) ComputeDigest() (string, error) {
	data, err := r.Canonical()
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainResult, data), nil
}

// Answer renders the puzzle answer for the result: the digit string for an
// order readout, or the checksum for a pair readout.
func (r *Result) Answer() string {
	if r.Readout == ReadoutPair {
		return fmt.Sprintf("%d", r.Checksum)
	}
	if r.Digits != "" {
		return r.Digits
	}
	return fmt.Sprint(r.Order)
}

func checkSentinel(sentinel int, r *ring.Ring) error {
	if sentinel < 1 || sentinel > r.Size() {
		return &ring.InputError{
			Code:    ring.ErrCodeOutOfRange,
			Message: fmt.Sprintf("sentinel %d outside [1,%d]", sentinel, r.Size()),
			Index:   -1,
			Label:   sentinel,
		}
	}
	return nil
}
