package practice

import (
	"errors"
	"fmt"

	"github.com/abhisek/wordmath/internal/llm"
	"github.com/abhisek/wordmath/internal/problemgen"
)

// Error kinds. Test with errors.Is; the underlying cause is reachable with
// errors.As.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSessionNotFound   = errors.New("problem session not found")
	ErrOracleUnavailable = errors.New("oracle unavailable")
	ErrGenerationInvalid = errors.New("oracle returned malformed output")
	ErrPersistence       = errors.New("persistence failure")
)

// Error is a failed practice operation.
type Error struct {
	Kind error  // One of the Err* kinds above
	Op   string // "generate" or "grade"
	Err  error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// oracleError classifies an error from an LLM-backed call. Output that
// arrived but could not be used is GenerationInvalid; everything else
// (network, rate limit, timeout, cancellation) is OracleUnavailable.
func oracleError(op string, err error) *Error {
	var valErr *problemgen.ValidationError
	if llm.IsOutputError(err) || errors.As(err, &valErr) {
		return &Error{Kind: ErrGenerationInvalid, Op: op, Err: err}
	}
	return &Error{Kind: ErrOracleUnavailable, Op: op, Err: err}
}
