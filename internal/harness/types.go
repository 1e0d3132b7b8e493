package harness

import (
	"fmt"

	"github.com/roach88/cupgame/internal/game"
)

// Report is the outcome of a scenario execution.
type Report struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`

	// Result is the captured readout. Nil when construction failed.
	Result *game.Result `json:"result,omitempty"`
}

// NewReport creates a passing report.
func NewReport() *Report {
	return &Report{Pass: true, Errors: []string{}}
}

// AddError records a failed expectation and marks the report as failed.
func (r *Report) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
