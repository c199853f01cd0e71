package calc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/calc-engine/calc"
)

func sampleRecords() []calc.Calculation {
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	return []calc.Calculation{
		{Op: calc.OpAdd, OperandA: dec("2"), OperandB: dec("3"), Result: dec("5"), Timestamp: base},
		{Op: calc.OpDivide, OperandA: dec("10"), OperandB: dec("4"), Result: dec("2.5"), Timestamp: base.Add(time.Minute)},
		{Op: calc.OpRoot, OperandA: dec("-8"), OperandB: dec("3"), Result: dec("-2"), Timestamp: base.Add(2 * time.Minute)},
	}
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestTable_RoundTripIsLossless(t *testing.T) {
	records := sampleRecords()

	restored, err := calc.FromTable(calc.ToTable(records))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if len(restored) != len(records) {
		t.Fatalf("restored %d records, want %d", len(restored), len(records))
	}
	for i := range records {
		if !restored[i].Equal(records[i]) {
			t.Errorf("record %d differs after round trip: %+v vs %+v", i, restored[i], records[i])
		}
	}
}

func TestTable_EmptyHistorySerializesToHeaderOnly(t *testing.T) {
	rows := calc.ToTable(nil)
	if len(rows) != 1 {
		t.Fatalf("expected header-only table, got %d rows", len(rows))
	}

	restored, err := calc.FromTable(rows)
	if err != nil {
		t.Fatalf("loading header-only table: %v", err)
	}
	if len(restored) != 0 {
		t.Fatalf("expected empty history, got %d records", len(restored))
	}
}

func TestTable_UsesLongOperationNames(t *testing.T) {
	rows := calc.ToTable(sampleRecords())
	if rows[1][0] != "Addition" || rows[2][0] != "Division" || rows[3][0] != "Root" {
		t.Fatalf("unexpected operation column: %q, %q, %q", rows[1][0], rows[2][0], rows[3][0])
	}
}

// =============================================================================
// FAIL-FAST LOADING
// =============================================================================

func TestFromTable_RejectsBadHeader(t *testing.T) {
	rows := [][]string{{"op", "a", "b", "result", "timestamp"}}
	_, err := calc.FromTable(rows)
	var le *calc.HistoryLoadError
	if !errors.As(err, &le) || le.Row != -1 {
		t.Fatalf("expected header HistoryLoadError, got %v", err)
	}
}

func TestFromTable_RejectsMalformedRows(t *testing.T) {
	good := calc.ToTable(sampleRecords())

	cases := []struct {
		name string
		row  []string
		want int // expected failing row index
	}{
		{"missing field", []string{"Addition", "2", "3", "5"}, 3},
		{"unknown operation", []string{"Modulo", "2", "3", "5", "2026-03-10T12:00:00Z"}, 3},
		{"bad operand", []string{"Addition", "two", "3", "5", "2026-03-10T12:00:00Z"}, 3},
		{"bad result", []string{"Addition", "2", "3", "five", "2026-03-10T12:00:00Z"}, 3},
		{"bad timestamp", []string{"Addition", "2", "3", "5", "yesterday"}, 3},
	}

	for _, tc := range cases {
		rows := append(append([][]string{}, good...), tc.row)
		_, err := calc.FromTable(rows)
		var le *calc.HistoryLoadError
		if !errors.As(err, &le) {
			t.Errorf("%s: expected HistoryLoadError, got %v", tc.name, err)
			continue
		}
		if le.Row != tc.want {
			t.Errorf("%s: failing row %d, want %d", tc.name, le.Row, tc.want)
		}
	}
}

func TestFromTable_MissingHeader(t *testing.T) {
	_, err := calc.FromTable(nil)
	var le *calc.HistoryLoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected HistoryLoadError, got %v", err)
	}
}
