package archive_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/calc-engine/calc"
	"github.com/warp/calc-engine/calc/archive"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleRecords() []calc.Calculation {
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	return []calc.Calculation{
		{Op: calc.OpAdd, OperandA: dec("2"), OperandB: dec("3"), Result: dec("5"), Timestamp: base},
		{Op: calc.OpMultiply, OperandA: dec("4"), OperandB: dec("5"), Result: dec("20"), Timestamp: base.Add(time.Second)},
	}
}

func TestCSVFile_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	ar := archive.NewCSVFile(filepath.Join(t.TempDir(), "history", "calculator.csv"))

	records := sampleRecords()
	if err := ar.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := ar.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(records))
	}
	for i := range records {
		if !loaded[i].Equal(records[i]) {
			t.Errorf("record %d differs after round trip", i)
		}
	}
}

func TestCSVFile_SaveOverwrites(t *testing.T) {
	// GIVEN: An archive holding two records
	// WHEN: Saving a one-record history
	// THEN: Only that record remains on disk

	ctx := context.Background()
	ar := archive.NewCSVFile(filepath.Join(t.TempDir(), "calculator.csv"))

	if err := ar.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := ar.Save(ctx, sampleRecords()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := ar.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected overwrite to leave 1 record, got %d", len(loaded))
	}
}

func TestCSVFile_MissingFileLoadsEmpty(t *testing.T) {
	ar := archive.NewCSVFile(filepath.Join(t.TempDir(), "nope.csv"))
	loaded, err := ar.Load(context.Background())
	if err != nil {
		t.Fatalf("load of missing file: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty history, got %d records", len(loaded))
	}
}

func TestCSVFile_EmptyHistoryWritesHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "calculator.csv")
	ar := archive.NewCSVFile(path)

	if err := ar.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "operation,operand1,operand2,result,timestamp\n" {
		t.Fatalf("unexpected file contents: %q", data)
	}

	loaded, err := ar.Load(ctx)
	if err != nil || len(loaded) != 0 {
		t.Fatalf("load of empty history: %v, %d records", err, len(loaded))
	}
}

func TestCSVFile_CorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calculator.csv")
	content := "operation,operand1,operand2,result,timestamp\n" +
		"Addition,2,3,5,2026-03-10T12:00:00Z\n" +
		"Addition,two,3,5,2026-03-10T12:00:00Z\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := archive.NewCSVFile(path).Load(context.Background())
	var le *calc.HistoryLoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected HistoryLoadError, got %v", err)
	}
	if le.Row != 1 {
		t.Fatalf("failing row %d, want 1", le.Row)
	}
}
