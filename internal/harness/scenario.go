package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cupgame/internal/game"
)

// Scenario defines a conformance scenario for one game.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	Seed     string `yaml:"seed"`
	Size     int    `yaml:"size,omitempty"`
	Rounds   uint64 `yaml:"rounds"`
	Sentinel int    `yaml:"sentinel,omitempty"`
	Readout  string `yaml:"readout,omitempty"`

	// VerifyEvery checks the ring invariants every N rounds. Zero checks
	// once after the final round.
	VerifyEvery uint64 `yaml:"verify_every,omitempty"`

	// Long marks scenarios that take seconds rather than milliseconds.
	Long bool `yaml:"long,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect lists the readouts a scenario asserts on. Unset fields are not
// checked.
type Expect struct {
	Order    []int  `yaml:"order,omitempty"`
	Digits   string `yaml:"digits,omitempty"`
	Pair     []int  `yaml:"pair,omitempty"`
	Checksum int64  `yaml:"checksum,omitempty"`
	Current  int    `yaml:"current,omitempty"`

	// Error is the expected ring.InputErrorCode when construction must fail.
	Error string `yaml:"error,omitempty"`
}

func (e Expect) empty() bool {
	return e.Order == nil && e.Digits == "" && e.Pair == nil &&
		e.Checksum == 0 && e.Current == 0 && e.Error == ""
}

// Spec returns the game described by the scenario.
func (s *Scenario) Spec() game.Spec {
	spec := game.Spec{
		Name:     s.Name,
		Seed:     s.Seed,
		Size:     s.Size,
		Rounds:   s.Rounds,
		Sentinel: s.Sentinel,
		Readout:  game.Readout(s.Readout),
	}
	spec.Normalize()
	return spec
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Expect.empty() {
		return fmt.Errorf("expect must set at least one field")
	}

	if s.Expect.Error != "" {
		if s.Expect.Order != nil || s.Expect.Digits != "" || s.Expect.Pair != nil ||
			s.Expect.Checksum != 0 || s.Expect.Current != 0 {
			return fmt.Errorf("expect.error cannot be combined with readout expectations")
		}
		return nil
	}

	if s.Seed == "" {
		return fmt.Errorf("seed is required")
	}

	if s.Readout != "" {
		if _, err := game.ParseReadout(s.Readout); err != nil {
			return err
		}
	}

	if s.Expect.Pair != nil && len(s.Expect.Pair) != 2 {
		return fmt.Errorf("expect.pair must have exactly 2 labels, got %d", len(s.Expect.Pair))
	}

	return nil
}
