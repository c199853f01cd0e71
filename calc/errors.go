/*
errors.go - Centralized error types for the calculator engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match sentinels with errors.Is and structured errors with
  errors.As.

ERROR CATEGORIES:
  1. Input errors      - Bad operands, unknown operation names
  2. Domain errors     - Mathematically undefined results
  3. History errors    - Corrupt persisted history, empty undo/redo
  4. Observer errors   - Side-effect failures during notification

PROPAGATION POLICY:
  Every error is returned to the facade's caller for user-facing
  reporting; nothing is swallowed. AggregateObserverError is special:
  the triggering history mutation has already committed and is NOT
  rolled back, so callers should treat it as a warning.
*/
package calc

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownOperation is returned when an operation name does not
	// resolve to a registered strategy.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDivisionByZero is returned when dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeRoot is returned for roots of negative numbers that
	// have no real result (even or non-integer degree).
	ErrNegativeRoot = errors.New("root of negative number undefined for this degree")

	// ErrZeroRootDegree is returned for a zeroth root.
	ErrZeroRootDegree = errors.New("zeroth root is undefined")

	// ErrUndefinedPower is returned when exponentiation has no real
	// result (zero base with negative exponent, or negative base with
	// a non-integer exponent).
	ErrUndefinedPower = errors.New("power operation undefined for these operands")

	// ErrNothingToUndo is returned when the undo stack is empty.
	// A no-op condition, not a fault.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports operand input rejected before any state
// change: not parseable as a number, or magnitude over the configured
// bound.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// UnknownOperationError names the operation that failed to resolve.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

func (e *UnknownOperationError) Unwrap() error {
	return ErrUnknownOperation
}

// DomainError reports a mathematically undefined computation. It wraps
// one of the domain sentinels so callers can match the specific cause
// or the whole class.
type DomainError struct {
	Op    Op
	Cause error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op.DisplayName(), e.Cause)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// HistoryLoadError reports a persisted history that failed to parse.
// Loads are fail-fast: the first bad row aborts the whole load and the
// live history keeps its pre-load value.
type HistoryLoadError struct {
	Row    int // zero-based data row index; -1 for header problems
	Reason string
}

func (e *HistoryLoadError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("history load failed: %s", e.Reason)
	}
	return fmt.Sprintf("history load failed at row %d: %s", e.Row, e.Reason)
}

// ObserverFailure pairs a failed observer with its error.
type ObserverFailure struct {
	Observer string
	Err      error
}

// AggregateObserverError collects every observer failure from one
// notification. The history mutation that triggered the notification
// has already committed; this error is a warning, not a rollback.
type AggregateObserverError struct {
	Event    HistoryEvent
	Failures []ObserverFailure
}

func (e *AggregateObserverError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Observer, f.Err)
	}
	return fmt.Sprintf("%d observer(s) failed on %s: %s", len(e.Failures), e.Event, strings.Join(parts, "; "))
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsDomainError returns true if the error is a mathematically
// undefined computation.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// IsClientError returns true if the error is due to invalid caller
// input rather than an engine fault.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrUnknownOperation) ||
		IsDomainError(err)
}

// IsNoOp returns true for the empty undo/redo stack conditions, which
// front ends report as messages rather than errors.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo)
}
