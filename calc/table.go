/*
table.go - Tabular codec for the persisted history

PURPOSE:
  Lossless round-trip between the in-memory history and the persisted
  row-oriented representation: one row per calculation, a fixed header
  naming the columns. Archive implementations (CSV file, SQLite) share
  this column contract.

LOAD CONTRACT:
  Fail-fast. The header must match the expected column set exactly,
  and the first row that fails to parse any column aborts the whole
  load with a *HistoryLoadError naming the row and reason. Partial
  loads never happen.
*/
package calc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TableHeader is the fixed column set of the persisted history, in
// order. Operation names are stored in long form ("Addition").
var TableHeader = []string{"operation", "operand1", "operand2", "result", "timestamp"}

// timestampLayout is the wire format for the timestamp column.
const timestampLayout = time.RFC3339Nano

// ToTable serializes records into rows: the header first, then one
// row per record in chronological order.
func ToTable(records []Calculation) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, append([]string(nil), TableHeader...))
	for _, c := range records {
		rows = append(rows, []string{
			c.Op.DisplayName(),
			c.OperandA.String(),
			c.OperandB.String(),
			c.Result.String(),
			c.Timestamp.Format(timestampLayout),
		})
	}
	return rows
}

// FromTable parses rows produced by ToTable (or an external writer
// honoring the same contract) back into records. The first row must
// be the exact header. Row indices in errors count data rows from
// zero; -1 marks a header problem.
func FromTable(rows [][]string) ([]Calculation, error) {
	if len(rows) == 0 {
		return nil, &HistoryLoadError{Row: -1, Reason: "missing header"}
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]Calculation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		c, err := parseRow(i, row)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, nil
}

func checkHeader(header []string) error {
	if len(header) != len(TableHeader) {
		return &HistoryLoadError{Row: -1, Reason: fmt.Sprintf("expected %d columns, got %d", len(TableHeader), len(header))}
	}
	for i, name := range TableHeader {
		if header[i] != name {
			return &HistoryLoadError{Row: -1, Reason: fmt.Sprintf("column %d: expected %q, got %q", i, name, header[i])}
		}
	}
	return nil
}

func parseRow(index int, row []string) (Calculation, error) {
	if len(row) != len(TableHeader) {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("expected %d fields, got %d", len(TableHeader), len(row))}
	}

	op, ok := OpFromDisplayName(row[0])
	if !ok {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("unknown operation %q", row[0])}
	}

	a, err := decimal.NewFromString(row[1])
	if err != nil {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("operand1 %q: not a number", row[1])}
	}
	b, err := decimal.NewFromString(row[2])
	if err != nil {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("operand2 %q: not a number", row[2])}
	}
	result, err := decimal.NewFromString(row[3])
	if err != nil {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("result %q: not a number", row[3])}
	}
	ts, err := time.Parse(timestampLayout, row[4])
	if err != nil {
		return Calculation{}, &HistoryLoadError{Row: index, Reason: fmt.Sprintf("timestamp %q: %v", row[4], err)}
	}

	return Calculation{Op: op, OperandA: a, OperandB: b, Result: result, Timestamp: ts}, nil
}
