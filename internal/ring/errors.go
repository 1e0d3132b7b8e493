package ring

import (
	"errors"
	"fmt"
)

// InputError reports a label sequence that cannot form a ring.
//
// Input errors are raised at construction time (or by the seed adapter
// before construction) and are never recovered internally.
type InputError struct {
	// Code identifies the error category.
	Code InputErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the position of the offending label, or -1.
	Index int

	// Label is the offending label, when there is one.
	Label int
}

// InputErrorCode categorizes malformed input.
type InputErrorCode string

const (
	// ErrCodeEmpty indicates an empty label sequence.
	ErrCodeEmpty InputErrorCode = "EMPTY"

	// ErrCodeDuplicate indicates a label appears more than once.
	ErrCodeDuplicate InputErrorCode = "DUPLICATE"

	// ErrCodeOutOfRange indicates a label outside [1,N].
	ErrCodeOutOfRange InputErrorCode = "OUT_OF_RANGE"

	// ErrCodeTooSmall indicates fewer than MinLabels labels.
	ErrCodeTooSmall InputErrorCode = "TOO_SMALL"

	// ErrCodeBadSize indicates an extension size that cannot hold the input.
	ErrCodeBadSize InputErrorCode = "BAD_SIZE"

	// ErrCodeBadDigit indicates puzzle text that is not a digit string.
	ErrCodeBadDigit InputErrorCode = "BAD_DIGIT"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInputError creates an InputError that is not tied to a position.
func NewInputError(code InputErrorCode, message string) *InputError {
	return &InputError{Code: code, Message: message, Index: -1}
}

// IsMalformed returns true if err is (or wraps) an InputError.
func IsMalformed(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// InputErrorCodeOf returns the code of a wrapped InputError, or "".
func InputErrorCodeOf(err error) InputErrorCode {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// InvariantError reports a successor mapping that no longer forms a single
// cycle over {1..N}. It means the mapping was corrupted; it is never a
// condition a valid ring can reach.
//
// The hot path panics with *InvariantError. Verify returns one as an error.
type InvariantError struct {
	Message string

	// Label is the label at which the violation was observed.
	Label int

	// Round is the number of rounds completed when it was observed.
	Round uint64
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("INVARIANT_VIOLATION: %s (label=%d, round=%d)", e.Message, e.Label, e.Round)
}

// IsInvariantViolation returns true if err is (or wraps) an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
