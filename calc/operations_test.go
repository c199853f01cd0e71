package calc_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/calc-engine/calc"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func apply(t *testing.T, name, a, b string) (decimal.Decimal, error) {
	t.Helper()
	op, err := calc.NewRegistry().Resolve(name)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}
	return op.Apply(dec(a), dec(b))
}

func mustApply(t *testing.T, name, a, b string) decimal.Decimal {
	t.Helper()
	result, err := apply(t, name, a, b)
	if err != nil {
		t.Fatalf("%s(%s, %s): unexpected error: %v", name, a, b, err)
	}
	return result
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_Resolve_KnownOperations(t *testing.T) {
	r := calc.NewRegistry()
	for _, name := range []string{"add", "subtract", "multiply", "divide", "power", "root"} {
		op, err := r.Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", name, err)
			continue
		}
		if string(op.Kind()) != name {
			t.Errorf("Resolve(%q) returned kind %q", name, op.Kind())
		}
	}
}

func TestRegistry_Resolve_CaseInsensitive(t *testing.T) {
	r := calc.NewRegistry()
	op, err := r.Resolve("  Add ")
	if err != nil {
		t.Fatalf("Resolve with whitespace/case failed: %v", err)
	}
	if op.Kind() != calc.OpAdd {
		t.Errorf("expected add, got %q", op.Kind())
	}
}

func TestRegistry_Resolve_Unknown(t *testing.T) {
	_, err := calc.NewRegistry().Resolve("modulo")
	if !errors.Is(err, calc.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
	var ue *calc.UnknownOperationError
	if !errors.As(err, &ue) || ue.Name != "modulo" {
		t.Fatalf("expected UnknownOperationError naming 'modulo', got %v", err)
	}
}

// =============================================================================
// STRATEGY TESTS
// =============================================================================

func TestOperations_BasicArithmetic(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want string
	}{
		{"add", "5", "3", "8"},
		{"add", "-2.5", "2.5", "0"},
		{"subtract", "10", "3", "7"},
		{"multiply", "3", "4", "12"},
		{"multiply", "0.1", "0.2", "0.02"},
		{"divide", "10", "4", "2.5"},
		{"power", "2", "10", "1024"},
		{"power", "-2", "3", "-8"},
		{"root", "27", "3", "3"},
		{"root", "16", "2", "4"},
		{"root", "-8", "3", "-2"},
	}

	for _, tc := range cases {
		got := mustApply(t, tc.name, tc.a, tc.b)
		// Strategies return full precision; power/root go through
		// float math, so compare at the 10 places the default
		// configuration rounds to.
		if !got.Round(10).Equal(dec(tc.want)) {
			t.Errorf("%s(%s, %s) = %s, want %s", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestOperations_Determinism(t *testing.T) {
	// GIVEN: Any operation
	// WHEN: Applied twice to the same operands
	// THEN: Results are identical (strategies are pure)

	first := mustApply(t, "divide", "1", "3")
	second := mustApply(t, "divide", "1", "3")
	if !first.Equal(second) {
		t.Errorf("divide(1, 3) not deterministic: %s vs %s", first, second)
	}
}

func TestOperations_DivideByZero(t *testing.T) {
	_, err := apply(t, "divide", "10", "0")
	if !errors.Is(err, calc.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if !calc.IsDomainError(err) {
		t.Fatalf("division by zero should be a domain error")
	}
}

func TestOperations_EvenRootOfNegative(t *testing.T) {
	_, err := apply(t, "root", "-8", "2")
	if !errors.Is(err, calc.ErrNegativeRoot) {
		t.Fatalf("expected ErrNegativeRoot, got %v", err)
	}
}

func TestOperations_FractionalRootOfNegative(t *testing.T) {
	// A fractional degree of a negative base has no real result, even
	// though the degree is "odd-ish".
	_, err := apply(t, "root", "-8", "2.5")
	if !errors.Is(err, calc.ErrNegativeRoot) {
		t.Fatalf("expected ErrNegativeRoot, got %v", err)
	}
}

func TestOperations_ZerothRoot(t *testing.T) {
	_, err := apply(t, "root", "8", "0")
	if !errors.Is(err, calc.ErrZeroRootDegree) {
		t.Fatalf("expected ErrZeroRootDegree, got %v", err)
	}
}

func TestOperations_UndefinedPower(t *testing.T) {
	// 0^-1 divides by zero; (-2)^0.5 is imaginary.
	for _, tc := range [][2]string{{"0", "-1"}, {"-2", "0.5"}} {
		_, err := apply(t, "power", tc[0], tc[1])
		if !errors.Is(err, calc.ErrUndefinedPower) {
			t.Errorf("power(%s, %s): expected ErrUndefinedPower, got %v", tc[0], tc[1], err)
		}
	}
}

func TestOp_DisplayNameRoundTrip(t *testing.T) {
	for _, op := range []calc.Op{calc.OpAdd, calc.OpSubtract, calc.OpMultiply, calc.OpDivide, calc.OpPower, calc.OpRoot} {
		back, ok := calc.OpFromDisplayName(op.DisplayName())
		if !ok || back != op {
			t.Errorf("display name round trip failed for %q: got %q, ok=%v", op, back, ok)
		}
	}
	if _, ok := calc.OpFromDisplayName("Modulo"); ok {
		t.Error("unknown display name should not resolve")
	}
}
