/*
Package sqlite provides a SQLite-backed implementation of calc.Archive.

PURPOSE:
  Database-backed alternative to the CSV file archive. Same contract:
  Save replaces the archived history wholesale, Load returns it in
  chronological order, a never-written archive loads as empty.

OVERWRITE SEMANTICS:
  The archive mirrors the live history, it is not an append-only log.
  Save runs DELETE + INSERTs inside one transaction so a failed save
  never leaves a half-written history behind.

KEY TABLE:
  history: one row per calculation, ordered by position

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  ar, err := sqlite.New("./data/history.db")
  if err != nil {
      log.Fatal(err)
  }
  defer ar.Close()

  calculator, err := calc.NewCalculator(cfg, ar, logFile)

SEE ALSO:
  - calc/archive.go: Interface definition
  - calc/archive/csvfile.go: File-backed implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/calc-engine/calc"
)

// Archive implements calc.Archive using SQLite.
type Archive struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite archive at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		position  INTEGER PRIMARY KEY,
		operation TEXT NOT NULL,
		operand1  TEXT NOT NULL,
		operand2  TEXT NOT NULL,
		result    TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Save replaces the archived history with records, atomically.
func (a *Archive) Save(ctx context.Context, records []calc.Calculation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear archived history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO history (position, operation, operand1, operand2, result, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range records {
		_, err := stmt.ExecContext(ctx, i,
			c.Op.DisplayName(),
			c.OperandA.String(),
			c.OperandB.String(),
			c.Result.String(),
			c.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns the archived history ordered by position. Malformed
// rows fail the whole load with *calc.HistoryLoadError.
func (a *Archive) Load(ctx context.Context) ([]calc.Calculation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rows, err := a.db.QueryContext(ctx, `
		SELECT operation, operand1, operand2, result, timestamp
		FROM history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query archived history: %w", err)
	}
	defer rows.Close()

	var records []calc.Calculation
	index := 0
	for rows.Next() {
		var opName, a1, a2, res, ts string
		if err := rows.Scan(&opName, &a1, &a2, &res, &ts); err != nil {
			return nil, &calc.HistoryLoadError{Row: index, Reason: err.Error()}
		}
		c, err := parseRecord(index, opName, a1, a2, res, ts)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
		index++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read archived history: %w", err)
	}
	return records, nil
}

func parseRecord(index int, opName, a1, a2, res, ts string) (calc.Calculation, error) {
	op, ok := calc.OpFromDisplayName(opName)
	if !ok {
		return calc.Calculation{}, &calc.HistoryLoadError{Row: index, Reason: fmt.Sprintf("unknown operation %q", opName)}
	}
	operandA, err := decimal.NewFromString(a1)
	if err != nil {
		return calc.Calculation{}, &calc.HistoryLoadError{Row: index, Reason: fmt.Sprintf("operand1 %q: not a number", a1)}
	}
	operandB, err := decimal.NewFromString(a2)
	if err != nil {
		return calc.Calculation{}, &calc.HistoryLoadError{Row: index, Reason: fmt.Sprintf("operand2 %q: not a number", a2)}
	}
	result, err := decimal.NewFromString(res)
	if err != nil {
		return calc.Calculation{}, &calc.HistoryLoadError{Row: index, Reason: fmt.Sprintf("result %q: not a number", res)}
	}
	stamp, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return calc.Calculation{}, &calc.HistoryLoadError{Row: index, Reason: fmt.Sprintf("timestamp %q: %v", ts, err)}
	}
	return calc.Calculation{Op: op, OperandA: operandA, OperandB: operandB, Result: result, Timestamp: stamp}, nil
}

var _ calc.Archive = (*Archive)(nil)
