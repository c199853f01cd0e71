package calc

import "context"

// =============================================================================
// ARCHIVE - Persistence for the history snapshot
// =============================================================================

// Archive persists the full history. Save has overwrite semantics:
// after Save the archive holds exactly the given records and nothing
// else. Implementations live in calc/archive (CSV file, in-memory)
// and store/sqlite.
type Archive interface {
	// Save replaces the archived history with records, in order.
	Save(ctx context.Context, records []Calculation) error

	// Load returns the archived history in chronological order. A
	// never-written archive loads as empty, not as an error; a corrupt
	// one fails with *HistoryLoadError.
	Load(ctx context.Context) ([]Calculation, error)
}
