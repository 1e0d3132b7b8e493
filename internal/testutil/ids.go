package testutil

// DefaultRunID is the run ID used when none is configured.
const DefaultRunID = "test-run-default"

// ConstantIDGenerator returns the same run ID every time.
//
// Harness results are compared by digest, never by ID, so stamping every
// run with one ID keeps reports byte-identical across executions.
//
// Unlike game.FixedGenerator, which hands out a list of IDs in order and
// panics when it runs out, ConstantIDGenerator never runs out.
//
// Thread-safety: ConstantIDGenerator is stateless and safe for concurrent use.
type ConstantIDGenerator struct {
	id string
}

// NewConstantIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns DefaultRunID.
func NewConstantIDGenerator(id string) *ConstantIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &ConstantIDGenerator{id: id}
}

// Generate returns the fixed run ID.
//
// Implements game.IDGenerator.
func (g *ConstantIDGenerator) Generate() string {
	return g.id
}
