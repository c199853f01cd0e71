/*
operations.go - Arithmetic strategies and the operation registry

PURPOSE:
  Maps operation command words to stateless binary-arithmetic
  strategies. Strategies are pure: the same (op, a, b) always yields
  the same result or the same failure.

DOMAIN RULES:
  - divide:  b must be non-zero
  - power:   0^negative and negative^non-integer are undefined
  - root:    a^(1/n); defined for a >= 0, or a < 0 with odd integer n
             (real odd root, negative result); zeroth root undefined

ROUNDING:
  Strategies return full-precision results. Rounding to the configured
  number of decimal places is the facade's job, so the registry stays
  configuration-free.

SEE ALSO:
  - errors.go: DomainError and the domain sentinels
  - calculator.go: Where strategies are resolved and applied
*/
package calc

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OPERATION - Stateless binary arithmetic strategy
// =============================================================================

// Operation is a pure, stateless strategy for one arithmetic operator.
type Operation interface {
	// Kind identifies which operator this strategy implements.
	Kind() Op

	// Apply computes the operation. Fails with *DomainError when the
	// result is mathematically undefined.
	Apply(a, b decimal.Decimal) (decimal.Decimal, error)
}

type operation struct {
	kind  Op
	apply func(a, b decimal.Decimal) (decimal.Decimal, error)
}

func (o operation) Kind() Op { return o.kind }

func (o operation) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return o.apply(a, b)
}

// =============================================================================
// REGISTRY - Command word to strategy
// =============================================================================

// Registry resolves operation names to strategies. The registered set
// is fixed at construction.
type Registry struct {
	ops map[string]Operation
}

// NewRegistry builds a registry with every supported operation.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Operation)}
	for _, op := range []operation{
		{OpAdd, applyAdd},
		{OpSubtract, applySubtract},
		{OpMultiply, applyMultiply},
		{OpDivide, applyDivide},
		{OpPower, applyPower},
		{OpRoot, applyRoot},
	} {
		r.ops[string(op.kind)] = op
	}
	return r
}

// Resolve returns the strategy for a command word. Names are
// case-insensitive. Fails with *UnknownOperationError, which unwraps
// to ErrUnknownOperation.
func (r *Registry) Resolve(name string) (Operation, error) {
	op, ok := r.ops[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}
	return op, nil
}

// Names returns the registered command words, sorted for stable help
// output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for _, op := range []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpRoot} {
		if _, ok := r.ops[string(op)]; ok {
			names = append(names, string(op))
		}
	}
	return names
}

// =============================================================================
// STRATEGIES
// =============================================================================

func applyAdd(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Add(b), nil
}

func applySubtract(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Sub(b), nil
}

func applyMultiply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Mul(b), nil
}

func applyDivide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, &DomainError{Op: OpDivide, Cause: ErrDivisionByZero}
	}
	return a.DivRound(b, divisionPrecision), nil
}

// divisionPrecision is the internal precision for division before the
// facade rounds to the configured number of places.
const divisionPrecision = 28

func applyPower(a, b decimal.Decimal) (decimal.Decimal, error) {
	if a.IsZero() && b.IsNegative() {
		return decimal.Decimal{}, &DomainError{Op: OpPower, Cause: ErrUndefinedPower}
	}
	if a.IsNegative() && !b.IsInteger() {
		return decimal.Decimal{}, &DomainError{Op: OpPower, Cause: ErrUndefinedPower}
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	result := math.Pow(af, bf)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return decimal.Decimal{}, &DomainError{Op: OpPower, Cause: ErrUndefinedPower}
	}
	return decimal.NewFromFloat(result), nil
}

func applyRoot(a, n decimal.Decimal) (decimal.Decimal, error) {
	if n.IsZero() {
		return decimal.Decimal{}, &DomainError{Op: OpRoot, Cause: ErrZeroRootDegree}
	}

	negative := a.IsNegative()
	if negative && !isOddInteger(n) {
		// Even or fractional degree of a negative base has no real root.
		return decimal.Decimal{}, &DomainError{Op: OpRoot, Cause: ErrNegativeRoot}
	}

	af, _ := a.Abs().Float64()
	nf, _ := n.Float64()
	result := math.Pow(af, 1/nf)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return decimal.Decimal{}, &DomainError{Op: OpRoot, Cause: ErrNegativeRoot}
	}
	if negative {
		result = -result
	}
	return decimal.NewFromFloat(result), nil
}

func isOddInteger(n decimal.Decimal) bool {
	if !n.IsInteger() {
		return false
	}
	return !n.Mod(decimal.NewFromInt(2)).IsZero()
}
