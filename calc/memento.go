/*
memento.go - Snapshot-based undo/redo

PURPOSE:
  Implements undo/redo over full-history snapshots. Two stacks:
  undo (past states, most recent on top) and redo (undone states).

TRANSITION RULES:
  RecordState(s): push s onto undo, clear redo. Called by the facade
                  immediately before a new calculation or clear mutates
                  the history. A new action invalidates any redo branch.
  Undo(current):  pop undo as T, push current onto redo, return T.
  Redo(current):  pop redo as T, push current onto undo, return T.

  The stack never touches the History or the Bus; the caller restores
  the returned memento and decides about persistence.

OWNERSHIP:
  Mementos are value snapshots. They copy on construction and copy on
  read, so no caller can mutate a stacked state.
*/
package calc

import "time"

// =============================================================================
// MEMENTO - Immutable full-history snapshot
// =============================================================================

// Memento is a deep, value-equal snapshot of the history at one
// moment.
type Memento struct {
	records []Calculation
	takenAt time.Time
}

func newMemento(records []Calculation) Memento {
	snapshot := make([]Calculation, len(records))
	copy(snapshot, records)
	return Memento{records: snapshot, takenAt: time.Now().UTC()}
}

// Records returns a copy of the snapshotted sequence.
func (m Memento) Records() []Calculation {
	out := make([]Calculation, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of records in the snapshot.
func (m Memento) Len() int { return len(m.records) }

// TakenAt returns when the snapshot was captured.
func (m Memento) TakenAt() time.Time { return m.takenAt }

// ToTable serializes the snapshot through the shared tabular codec,
// header row included.
func (m Memento) ToTable() [][]string {
	return ToTable(m.records)
}

// MementoFromTable rebuilds a snapshot from rows produced by ToTable.
// Fails with *HistoryLoadError on malformed rows; the capture time is
// the reconstruction instant, not the original's.
func MementoFromTable(rows [][]string) (Memento, error) {
	records, err := FromTable(rows)
	if err != nil {
		return Memento{}, err
	}
	return newMemento(records), nil
}

// Equal reports record-for-record equality between snapshots,
// ignoring capture time.
func (m Memento) Equal(other Memento) bool {
	if len(m.records) != len(other.records) {
		return false
	}
	for i := range m.records {
		if !m.records[i].Equal(other.records[i]) {
			return false
		}
	}
	return true
}

// =============================================================================
// MEMENTO STACK - Undo/redo state machine
// =============================================================================

// MementoStack holds the undo and redo stacks. Both start empty at
// process start; a fresh session has nothing to undo.
type MementoStack struct {
	undo []Memento
	redo []Memento
}

func NewMementoStack() *MementoStack {
	return &MementoStack{}
}

// RecordState pushes the pre-mutation snapshot onto the undo stack and
// clears the redo stack: once a new branch of history exists, the old
// redo states are unreachable.
func (s *MementoStack) RecordState(snapshot Memento) {
	s.undo = append(s.undo, snapshot)
	s.redo = s.redo[:0]
}

// Undo pops the most recent past state, parking the current live
// snapshot on the redo stack. Fails with ErrNothingToUndo when empty.
func (s *MementoStack) Undo(current Memento) (Memento, error) {
	if len(s.undo) == 0 {
		return Memento{}, ErrNothingToUndo
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current)
	return top, nil
}

// Redo is the mirror of Undo. Fails with ErrNothingToRedo when empty.
func (s *MementoStack) Redo(current Memento) (Memento, error) {
	if len(s.redo) == 0 {
		return Memento{}, ErrNothingToRedo
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current)
	return top, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (s *MementoStack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (s *MementoStack) CanRedo() bool { return len(s.redo) > 0 }

// Reset empties both stacks.
func (s *MementoStack) Reset() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}
