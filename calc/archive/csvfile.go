/*
Package archive provides calc.Archive implementations.

The CSV file archive is the primary persisted-history backend: a
row-oriented delimited text file with a fixed header, overwritten in
full on every save. store/sqlite provides a database-backed
alternative with the same contract.
*/
package archive

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp/calc-engine/calc"
)

// CSVFile persists the history as a CSV file. Writes go through a
// temp file and rename, so a crashed save never leaves a truncated
// history behind.
type CSVFile struct {
	path string
}

// NewCSVFile creates an archive at path. The parent directory is
// created on first save, not here.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

// Path returns the backing file location.
func (a *CSVFile) Path() string { return a.path }

// Save overwrites the file with the full history, header included.
func (a *CSVFile) Save(ctx context.Context, records []calc.Calculation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(a.path), ".history-*.csv")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(calc.ToTable(records)); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// Load reads the archived history. A missing file is an empty history,
// not an error; a malformed file fails with *calc.HistoryLoadError.
func (a *CSVFile) Load(ctx context.Context) ([]calc.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count is checked per row by FromTable
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &calc.HistoryLoadError{Row: -1, Reason: fmt.Sprintf("malformed CSV: %v", err)}
	}
	if len(rows) == 0 {
		// File exists but is empty; treat as an empty history.
		return nil, nil
	}
	return calc.FromTable(rows)
}

var _ calc.Archive = (*CSVFile)(nil)
