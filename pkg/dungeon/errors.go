package dungeon

import "fmt"

// This file implements spec §7's three-mode error taxonomy. The director
// is the only caller expected to inspect RejectionError/AbortError;
// InvalidInputError is meant to propagate to the host engine.

// RejectionError signals a recoverable rejection: the generated level
// violated a global budget or a quality predicate. The director logs the
// cause and retries from the next RNG state; once its attempt limit is
// used up, GenerateCave returns a RejectionError to its caller.
type RejectionError struct {
	Cause string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("dungeon: level rejected: %s", e.Cause)
}

// NewRejectionError constructs a RejectionError carrying cause; it wraps
// no underlying error.
func NewRejectionError(cause string) error {
	return &RejectionError{Cause: cause}
}

// AbortError signals a bounded-loop abort: some carver or search exceeded
// its iteration cap. No loop in this module returns one: the bounded
// loops stop at their caps and keep the work already done without
// reporting an error.
type AbortError struct {
	Loop string
	Cap  int
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("dungeon: %s aborted after %d iterations", e.Loop, e.Cap)
}

// NewAbortError constructs an AbortError for the named bounded loop.
func NewAbortError(loop string, cap int) error {
	return &AbortError{Loop: loop, Cap: cap}
}

// InvalidInputError signals a fatal, non-retryable condition: an
// out-of-range depth, a corrupt vault record, or an out-of-bounds
// coordinate assertion. The surrounding engine is expected to surface
// this, not retry.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("dungeon: invalid input: %s", e.Reason)
}

// NewInvalidInputError constructs an InvalidInputError.
func NewInvalidInputError(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// IsRejection reports whether err is a RejectionError.
func IsRejection(err error) bool {
	_, ok := err.(*RejectionError)
	return ok
}

// IsAbort reports whether err is an AbortError.
func IsAbort(err error) bool {
	_, ok := err.(*AbortError)
	return ok
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	_, ok := err.(*InvalidInputError)
	return ok
}
