package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calc-engine/calc"
	"github.com/warp/calc-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestArchive(t *testing.T) *sqlite.Archive {
	ar, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { ar.Close() })
	return ar
}

func dec(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func sampleRecords(t *testing.T) []calc.Calculation {
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	return []calc.Calculation{
		{Op: calc.OpAdd, OperandA: dec(t, "2"), OperandB: dec(t, "3"), Result: dec(t, "5"), Timestamp: base},
		{Op: calc.OpPower, OperandA: dec(t, "2"), OperandB: dec(t, "10"), Result: dec(t, "1024"), Timestamp: base.Add(time.Second)},
		{Op: calc.OpRoot, OperandA: dec(t, "27"), OperandB: dec(t, "3"), Result: dec(t, "3"), Timestamp: base.Add(2 * time.Second)},
	}
}

// =============================================================================
// ARCHIVE CONTRACT TESTS
// =============================================================================

func TestSQLiteArchive_RoundTrip(t *testing.T) {
	ar := newTestArchive(t)
	ctx := context.Background()

	records := sampleRecords(t)
	require.NoError(t, ar.Save(ctx, records))

	loaded, err := ar.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))
	for i := range records {
		assert.True(t, loaded[i].Equal(records[i]), "record %d should survive the round trip", i)
	}
}

func TestSQLiteArchive_SaveOverwrites(t *testing.T) {
	// Save mirrors the live history wholesale; it is not append-only.
	ar := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, ar.Save(ctx, sampleRecords(t)))
	require.NoError(t, ar.Save(ctx, sampleRecords(t)[:1]))

	loaded, err := ar.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSQLiteArchive_FreshDatabaseLoadsEmpty(t *testing.T) {
	ar := newTestArchive(t)

	loaded, err := ar.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteArchive_SaveEmptyClearsArchive(t *testing.T) {
	ar := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, ar.Save(ctx, sampleRecords(t)))
	require.NoError(t, ar.Save(ctx, nil))

	loaded, err := ar.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteArchive_PreservesChronologicalOrder(t *testing.T) {
	ar := newTestArchive(t)
	ctx := context.Background()

	records := sampleRecords(t)
	require.NoError(t, ar.Save(ctx, records))

	loaded, err := ar.Load(ctx)
	require.NoError(t, err)
	for i := 1; i < len(loaded); i++ {
		assert.True(t, loaded[i].Timestamp.After(loaded[i-1].Timestamp),
			"records should load oldest first")
	}
}

func TestSQLiteArchive_BacksACalculator(t *testing.T) {
	// The archive slots in as the facade's persistence backend.
	ar := newTestArchive(t)
	ctx := context.Background()

	c, err := calc.NewCalculator(calc.DefaultConfig(), ar, nil)
	require.NoError(t, err)

	_, err = c.Compute(ctx, "add", dec(t, "2"), dec(t, "3"))
	require.NoError(t, err)

	// Auto-save already persisted the append.
	loaded, err := ar.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "5", loaded[0].Result.String())
}
