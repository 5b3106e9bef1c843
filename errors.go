package jsonrepair

import (
	"errors"
	"fmt"
)

// ErrRepairFailed is the sentinel wrapped by every RepairFailedError, so
// callers can test for it with errors.Is regardless of the offending
// output.
var ErrRepairFailed = errors.New("jsonrepair: finalised output is not strict JSON")

// ErrInputTooLarge and ErrTooDeep are returned by the optional guard
// pre-flight (WithMaxInputBytes, WithMaxDepth) before the repair loop
// ever runs.
var (
	ErrInputTooLarge = errors.New("jsonrepair: input exceeds configured max bytes")
	ErrTooDeep       = errors.New("jsonrepair: input exceeds configured max nesting depth")
)

// RepairFailedError is returned only when the finaliser's own strict-parse
// assertion fails: the finalised output is non-empty and does not parse
// as JSON. Per spec this signals a design defect or an extremely
// pathological input, never ordinary malformed input. It carries the
// produced output and the input offset the engine had reached, for
// diagnosis.
type RepairFailedError struct {
	// Output is the finalised text that failed to parse.
	Output string
	// Pos is the input offset the engine had reached when finalisation
	// ran.
	Pos int
	// Err is the strict decoder's own parse error, if available.
	Err error
}

func (e *RepairFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jsonrepair: repair failed at input offset %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("jsonrepair: repair failed at input offset %d", e.Pos)
}

func (e *RepairFailedError) Unwrap() error { return ErrRepairFailed }

func newRepairFailedError(output string, pos int, cause error) *RepairFailedError {
	return &RepairFailedError{Output: output, Pos: pos, Err: cause}
}
