/*
calculator.go - Orchestrating facade

PURPOSE:
  Single entry point per user action. Compute wires the full pipeline:

    validate -> resolve -> apply -> record pre-state -> append -> notify

  Undo/redo bypass the operation path entirely and restore whole
  history snapshots, persisting explicitly when auto-save is on.

ORDERING INVARIANT:
  The pre-action snapshot is recorded only AFTER the computation
  succeeds, immediately before Append. A failed computation must not
  leave a spurious entry on the undo stack.

CONCURRENCY:
  One mutex guards history + stack + bus as a unit, so a snapshot
  recorded before a mutation always reflects the state immediately
  pre-mutation even with a concurrent front end (the HTTP API). All
  work is synchronous; one action completes before the next starts.

SEE ALSO:
  - operations.go: Strategy resolution
  - history.go, memento.go, observer.go: The parts being orchestrated
*/
package calc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"
)

// Calculator is the facade consumed by front ends (REPL, HTTP API).
type Calculator struct {
	mu       sync.Mutex
	cfg      Config
	registry *Registry
	history  *History
	stack    *MementoStack
	bus      *Bus
	archive  Archive
}

// NewCalculator wires the engine. The archive receives every auto-save
// and serves explicit Save/Load. auditSink, when non-nil, gets one
// human-readable line per history event; pass nil to skip audit
// logging.
func NewCalculator(cfg Config, archive Archive, auditSink io.Writer) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if archive == nil {
		return nil, errors.New("archive is required")
	}

	bus := NewBus()
	history := NewHistory(cfg.MaxHistorySize, bus)

	c := &Calculator{
		cfg:      cfg,
		registry: NewRegistry(),
		history:  history,
		stack:    NewMementoStack(),
		bus:      bus,
		archive:  archive,
	}

	// Registration order is notification order: persist first, then log.
	bus.Register(NewAutoSaveObserver(history, archive, cfg.AutoSave))
	if auditSink != nil {
		bus.Register(NewAuditLogObserver(auditSink))
	}
	return c, nil
}

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() Config { return c.cfg }

// Register adds an extra observer after the standard ones.
func (c *Calculator) Register(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bus.Register(o)
}

// Unregister removes an observer.
func (c *Calculator) Unregister(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bus.Unregister(o)
}

// =============================================================================
// COMPUTE
// =============================================================================

// Compute resolves the named operation, applies it to the operands,
// and appends the resulting record to the history.
//
// Failure modes, all pre-mutation: *ValidationError for out-of-range
// operands, *UnknownOperationError for a bad name, *DomainError for an
// undefined result. An *AggregateObserverError return means the append
// itself committed and only side effects failed.
func (c *Calculator) Compute(ctx context.Context, name string, a, b decimal.Decimal) (Calculation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMagnitude(a); err != nil {
		return Calculation{}, err
	}
	if err := c.checkMagnitude(b); err != nil {
		return Calculation{}, err
	}

	op, err := c.registry.Resolve(name)
	if err != nil {
		return Calculation{}, err
	}

	raw, err := op.Apply(a, b)
	if err != nil {
		return Calculation{}, err
	}

	record := NewCalculation(op.Kind(), a, b, raw.Round(c.cfg.Precision))

	// The computation succeeded: record the pre-append state now, so a
	// failed computation never parks a spurious undo entry.
	c.stack.RecordState(c.history.Snapshot())

	if err := c.history.Append(ctx, record); err != nil {
		// Observer failure; the append stands.
		return record, err
	}
	return record, nil
}

// ParseOperand parses a user-supplied operand and checks it against
// the configured magnitude bound. Front ends call this before Compute.
func (c *Calculator) ParseOperand(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Input: input, Reason: "not a number"}
	}
	if err := c.checkMagnitude(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

func (c *Calculator) checkMagnitude(d decimal.Decimal) error {
	if d.Abs().GreaterThan(c.cfg.MaxInputValue) {
		return &ValidationError{
			Input:  d.String(),
			Reason: fmt.Sprintf("magnitude exceeds maximum allowed value %s", c.cfg.MaxInputValue),
		}
	}
	return nil
}

// =============================================================================
// UNDO / REDO
// =============================================================================

// Undo restores the most recent past state. Fails with ErrNothingToUndo
// when there is none. Restoring is not a new calculation event, so no
// observers fire; when auto-save is on the archive is refreshed
// explicitly so the file reflects the active history.
func (c *Calculator) Undo(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.stack.Undo(c.history.Snapshot())
	if err != nil {
		return err
	}
	c.history.Restore(m)
	return c.saveIfAutoSave(ctx)
}

// Redo is the mirror of Undo. Fails with ErrNothingToRedo.
func (c *Calculator) Redo(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.stack.Redo(c.history.Snapshot())
	if err != nil {
		return err
	}
	c.history.Restore(m)
	return c.saveIfAutoSave(ctx)
}

// CanUndo reports whether Undo would succeed.
func (c *Calculator) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (c *Calculator) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.CanRedo()
}

func (c *Calculator) saveIfAutoSave(ctx context.Context) error {
	if !c.cfg.AutoSave {
		return nil
	}
	return c.archive.Save(ctx, c.history.Records())
}

// =============================================================================
// HISTORY MANAGEMENT
// =============================================================================

// ClearHistory empties the history. The pre-clear state goes onto the
// undo stack, so a clear can be undone like any other action.
func (c *Calculator) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stack.RecordState(c.history.Snapshot())
	return c.history.Clear(ctx)
}

// History returns the current records in chronological order.
func (c *Calculator) History() []Calculation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Records()
}

// Save persists the current history to the archive. With auto-save
// enabled this is redundant with the observer but harmless; both entry
// points are kept.
func (c *Calculator) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.archive.Save(ctx, c.history.Records())
}

// Load replaces the live history with the archived one. On failure the
// live history keeps its pre-load value, never a partial load. The
// undo/redo stacks are left untouched.
func (c *Calculator) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.archive.Load(ctx)
	if err != nil {
		return err
	}
	c.history.Restore(newMemento(records))
	return nil
}
