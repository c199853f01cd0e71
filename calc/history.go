/*
history.go - Bounded, observable calculation history

PURPOSE:
  The History is the single source of truth for the current sequence
  of calculations, insertion order = chronological order.

INVARIANTS:
  1. len(history) <= max size, always. Appending at the cap evicts the
     oldest record first (FIFO).
  2. Append and Clear notify the Bus before returning; Restore never
     notifies (undo/redo are not new calculation events).
  3. Snapshot and Records return copies; internal storage is never
     aliased by callers or mementos.

VALIDATION:
  None at this layer. Operand validation and domain checks happen
  upstream in the facade; by the time a Calculation reaches Append it
  is a committed fact. The only error Append or Clear can return is an
  AggregateObserverError from the fan-out, and the mutation stands
  regardless.

SEE ALSO:
  - observer.go: Event fan-out
  - memento.go: Snapshot type and undo/redo stack
*/
package calc

import "context"

// History holds the ordered, size-bounded calculation sequence.
type History struct {
	records []Calculation
	maxSize int
	bus     *Bus
}

// NewHistory creates an empty history bounded at maxSize records,
// notifying the given bus on mutations.
func NewHistory(maxSize int, bus *Bus) *History {
	return &History{maxSize: maxSize, bus: bus}
}

// Append adds the record at the end, evicting the oldest record first
// when the history is at capacity. The mutation always succeeds; a
// non-nil return is an *AggregateObserverError from notification and
// the appended record stays in place.
func (h *History) Append(ctx context.Context, c Calculation) error {
	if len(h.records) >= h.maxSize {
		// FIFO eviction keeps the newest maxSize records.
		h.records = append(h.records[:0], h.records[len(h.records)-h.maxSize+1:]...)
	}
	h.records = append(h.records, c)
	return h.bus.Notify(ctx, Event{Kind: EventAppended, Record: &c})
}

// Clear empties the history. As with Append, a non-nil return is an
// observer failure, not a rolled-back clear.
func (h *History) Clear(ctx context.Context) error {
	h.records = h.records[:0]
	return h.bus.Notify(ctx, Event{Kind: EventCleared})
}

// Snapshot returns an immutable copy of the current sequence.
func (h *History) Snapshot() Memento {
	return newMemento(h.records)
}

// Restore replaces the sequence with the memento's contents. No
// observer notification: persistence during undo/redo is the facade's
// explicit decision. The size bound still holds: a snapshot larger
// than the cap (an archive written under a bigger limit) keeps only
// its newest maxSize records.
func (h *History) Restore(m Memento) {
	records := m.records
	if len(records) > h.maxSize {
		records = records[len(records)-h.maxSize:]
	}
	h.records = append(h.records[:0:0], records...)
}

// Records returns a defensive copy in chronological order.
func (h *History) Records() []Calculation {
	out := make([]Calculation, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the current record count.
func (h *History) Len() int {
	return len(h.records)
}

// Equal reports record-for-record equality with another history.
func (h *History) Equal(other *History) bool {
	if h.Len() != other.Len() {
		return false
	}
	for i := range h.records {
		if !h.records[i].Equal(other.records[i]) {
			return false
		}
	}
	return true
}
