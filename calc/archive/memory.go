package archive

import (
	"context"
	"sync"

	"github.com/warp/calc-engine/calc"
)

// =============================================================================
// MEMORY ARCHIVE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is an in-memory Archive. It counts saves so tests can assert
// on auto-save behavior.
type Memory struct {
	mu      sync.RWMutex
	records []calc.Calculation
	saves   int
}

func NewMemory() *Memory {
	return &Memory{}
}

// Save replaces the archived history with a copy of records.
func (m *Memory) Save(_ context.Context, records []calc.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records[:0:0], records...)
	m.saves++
	return nil
}

// Load returns a copy of the archived history.
func (m *Memory) Load(_ context.Context) ([]calc.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]calc.Calculation, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Saves returns how many times Save has been called.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

var _ calc.Archive = (*Memory)(nil)
