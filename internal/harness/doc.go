// Package harness runs conformance scenarios against the ring engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: example_ten_rounds
//	description: "Worked example after ten moves"
//	seed: "389125467"
//	size: 0            # optional universe size after extension
//	rounds: 10
//	sentinel: 1        # optional, default 1
//	readout: order     # optional, order | pair
//	verify_every: 1    # optional, check ring invariants every N rounds
//	long: false        # optional, marks runs too slow for -short
//	expect:
//	  digits: "92658374"
//	  order: [9, 2, 6, 5, 8, 3, 7, 4]
//	  pair: [9, 2]
//	  checksum: 18
//	  current: 8
//
// A scenario that expects construction to fail names the input error code
// instead:
//
//	expect:
//	  error: DUPLICATE
//
// Every expectation field is optional, but at least one must be present.
// Unknown fields are rejected so typos do not silently pass.
//
// # Golden Snapshots
//
// RunWithGolden (for go test) and CompareGolden (for the CLI) compare the
// canonical JSON of a scenario's Result against testdata/golden/<name>.golden.
package harness
