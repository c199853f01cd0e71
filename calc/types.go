/*
Package calc provides the core calculator history engine.

PURPOSE:
  This package contains the domain types and algorithms for an
  interactive arithmetic calculator whose interesting machinery is the
  history subsystem: a bounded, observable calculation history with
  snapshot-based undo/redo.

KEY CONCEPTS IN THIS FILE (types.go):
  - Op: Closed set of supported arithmetic operations
  - Calculation: An immutable record of one computed operation
  - Config: Explicit configuration value object (no ambient state)

DESIGN PRINCIPLES:
  1. Immutability: Calculations are never modified after construction
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Explicitness: Configuration is constructed once and passed in;
     there is no process-wide mutable configuration

SEE ALSO:
  - operations.go: Operation strategies and the registry
  - history.go: Bounded history container
  - memento.go: Undo/redo snapshots
  - calculator.go: Orchestrating facade
*/
package calc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OP - Supported arithmetic operations
// =============================================================================

// Op identifies one of the supported binary arithmetic operations.
// The set is closed: strategies are registered in operations.go and
// resolved by command word through the Registry.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
	OpPower    Op = "power"
	OpRoot     Op = "root"
)

// displayNames are the long-form names used in the persisted history
// file, e.g. "Addition" rather than "add".
var displayNames = map[Op]string{
	OpAdd:      "Addition",
	OpSubtract: "Subtraction",
	OpMultiply: "Multiplication",
	OpDivide:   "Division",
	OpPower:    "Power",
	OpRoot:     "Root",
}

// DisplayName returns the long-form name of the operation.
func (o Op) DisplayName() string {
	if name, ok := displayNames[o]; ok {
		return name
	}
	return string(o)
}

// OpFromDisplayName maps a persisted long-form name back to its Op.
// Returns false if the name is not a known operation.
func OpFromDisplayName(name string) (Op, bool) {
	for op, display := range displayNames {
		if display == name {
			return op, true
		}
	}
	return "", false
}

// =============================================================================
// CALCULATION - Immutable record of one computed operation
// =============================================================================

// Calculation records one successful computation: both operands, the
// operation, the rounded result, and when it happened.
//
// INVARIANT: Calculations are value objects. They are constructed by
// the facade, stored by the History, and copied (never aliased, never
// mutated) by Memento snapshots.
type Calculation struct {
	Op        Op
	OperandA  decimal.Decimal
	OperandB  decimal.Decimal
	Result    decimal.Decimal
	Timestamp time.Time
}

// NewCalculation builds a record stamped with the current UTC time.
func NewCalculation(op Op, a, b, result decimal.Decimal) Calculation {
	return Calculation{
		Op:        op,
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
}

// Equal reports value equality. Timestamps compare with time.Equal and
// decimals with decimal.Equal, so two records representing the same
// calculation compare equal regardless of internal representation.
func (c Calculation) Equal(other Calculation) bool {
	return c.Op == other.Op &&
		c.OperandA.Equal(other.OperandA) &&
		c.OperandB.Equal(other.OperandB) &&
		c.Result.Equal(other.Result) &&
		c.Timestamp.Equal(other.Timestamp)
}

func (c Calculation) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s", c.Op.DisplayName(), c.OperandA, c.OperandB, c.Result)
}

// =============================================================================
// CONFIG - Explicit configuration value object
// =============================================================================

// Config carries every tunable the engine consumes. It is constructed
// once at startup and passed by value into NewCalculator; nothing in
// this package reads ambient process state.
type Config struct {
	// MaxHistorySize bounds the history; appending beyond it evicts
	// the oldest record (FIFO). Must be positive.
	MaxHistorySize int

	// AutoSave persists the full history after every append/clear and
	// after undo/redo restores.
	AutoSave bool

	// Precision is the number of decimal places results are rounded to.
	Precision int32

	// MaxInputValue bounds operand magnitude; larger inputs are
	// rejected before any computation.
	MaxInputValue decimal.Decimal

	// Encoding names the character encoding of the persisted file.
	// Only the persistence layer interprets it.
	Encoding string
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistorySize: 1000,
		AutoSave:       true,
		Precision:      10,
		MaxInputValue:  decimal.New(1, 100), // 1e100
		Encoding:       "utf-8",
	}
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if c.MaxHistorySize <= 0 {
		return fmt.Errorf("max history size must be positive, got %d", c.MaxHistorySize)
	}
	if c.Precision < 0 {
		return fmt.Errorf("precision must be non-negative, got %d", c.Precision)
	}
	if !c.MaxInputValue.IsPositive() {
		return fmt.Errorf("max input value must be positive, got %s", c.MaxInputValue)
	}
	return nil
}
