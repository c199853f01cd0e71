/*
observer.go - History event fan-out

PURPOSE:
  Decouples side effects (auto-save, audit logging) from the history
  container. Observers register with the Bus and are notified
  synchronously on every successful append and clear.

GUARANTEES:
  - Notification order across observers is registration order, kept in
    an ordered slice (not a map/set) so tests are deterministic.
  - A failing observer never prevents later observers from running.
    All failures are collected into one AggregateObserverError after
    every observer has been invoked.
  - Restoring a memento does NOT notify: undo/redo are not new
    calculation events. The facade persists explicitly in that path.

SEE ALSO:
  - history.go: The container that triggers notifications
  - calculator.go: Where the standard observers are registered
*/
package calc

import (
	"context"
	"fmt"
	"io"
)

// =============================================================================
// EVENTS
// =============================================================================

// HistoryEvent names a history mutation kind.
type HistoryEvent string

const (
	EventAppended HistoryEvent = "appended"
	EventCleared  HistoryEvent = "cleared"
)

// Event is the payload delivered to observers. Record is nil for
// EventCleared.
type Event struct {
	Kind   HistoryEvent
	Record *Calculation
}

// =============================================================================
// OBSERVER - Capability to receive history events
// =============================================================================

// Observer receives history mutation events. Implementations must not
// mutate the history from inside Notify.
type Observer interface {
	// Name identifies the observer in error reports.
	Name() string

	// Notify handles one history event. An error marks the observer as
	// failed for this event but does not stop the fan-out.
	Notify(ctx context.Context, e Event) error
}

// =============================================================================
// BUS - Ordered synchronous fan-out
// =============================================================================

// Bus holds registered observers and fans events out to them in
// registration order.
type Bus struct {
	observers []Observer
}

func NewBus() *Bus {
	return &Bus{}
}

// Register appends the observer to the notification order.
func (b *Bus) Register(o Observer) {
	b.observers = append(b.observers, o)
}

// Unregister removes the observer, preserving the order of the rest.
// Unknown observers are ignored.
func (b *Bus) Unregister(o Observer) {
	for i, existing := range b.observers {
		if existing == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the current notification order.
func (b *Bus) Observers() []Observer {
	out := make([]Observer, len(b.observers))
	copy(out, b.observers)
	return out
}

// Notify invokes every observer in registration order. Every observer
// runs even if earlier ones fail; failures are collected into a single
// *AggregateObserverError. Returns nil when all observers succeed.
func (b *Bus) Notify(ctx context.Context, e Event) error {
	var failures []ObserverFailure
	for _, o := range b.observers {
		if err := o.Notify(ctx, e); err != nil {
			failures = append(failures, ObserverFailure{Observer: o.Name(), Err: err})
		}
	}
	if len(failures) > 0 {
		return &AggregateObserverError{Event: e.Kind, Failures: failures}
	}
	return nil
}

// =============================================================================
// STANDARD OBSERVERS
// =============================================================================

// HistoryReader is the read surface the auto-save observer needs: the
// current records, without the power to mutate them.
type HistoryReader interface {
	Records() []Calculation
}

// AutoSaveObserver persists the full current history to an Archive on
// every event. Overwrite semantics: the archive always reflects the
// complete live history, never an append-only tail.
type AutoSaveObserver struct {
	history HistoryReader
	archive Archive
	enabled bool
}

func NewAutoSaveObserver(history HistoryReader, archive Archive, enabled bool) *AutoSaveObserver {
	return &AutoSaveObserver{history: history, archive: archive, enabled: enabled}
}

func (o *AutoSaveObserver) Name() string { return "auto-save" }

func (o *AutoSaveObserver) Notify(ctx context.Context, _ Event) error {
	if !o.enabled {
		return nil
	}
	return o.archive.Save(ctx, o.history.Records())
}

// AuditLogObserver appends one human-readable line per event to a log
// sink. The sink's location and rotation are the caller's concern.
type AuditLogObserver struct {
	sink io.Writer
}

func NewAuditLogObserver(sink io.Writer) *AuditLogObserver {
	return &AuditLogObserver{sink: sink}
}

func (o *AuditLogObserver) Name() string { return "audit-log" }

func (o *AuditLogObserver) Notify(_ context.Context, e Event) error {
	var err error
	switch e.Kind {
	case EventAppended:
		_, err = fmt.Fprintf(o.sink, "calculation recorded: %s\n", e.Record)
	case EventCleared:
		_, err = fmt.Fprintf(o.sink, "history cleared\n")
	default:
		_, err = fmt.Fprintf(o.sink, "history event: %s\n", e.Kind)
	}
	return err
}
