// backend/src/models/ledger_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAddPosition(t *testing.T) {
	ledger := NewLedger()
	acquired := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	ledger.AddPosition("RELIANCE.NS", 10, 2500, acquired)
	ledger.AddPosition("TCS.NS", 5, 3500, acquired)

	require.Equal(t, 2, ledger.Len())

	pos, ok := ledger.Get("RELIANCE.NS")
	require.True(t, ok)
	assert.Equal(t, 10.0, pos.Quantity)
	assert.Equal(t, 2500.0, pos.UnitCost)
	assert.Equal(t, acquired, pos.AcquiredAt)
}

func TestLedgerReAddReplacesNotMerges(t *testing.T) {
	ledger := NewLedger()

	ledger.AddPosition("X", 10, 100, time.Now())
	ledger.AddPosition("X", 5, 200, time.Now())

	require.Equal(t, 1, ledger.Len(), "re-adding the same identifier must not create a second position")

	pos, ok := ledger.Get("X")
	require.True(t, ok)
	assert.Equal(t, 5.0, pos.Quantity, "last write wins: quantity must be replaced, not merged")
	assert.Equal(t, 200.0, pos.UnitCost)
}

func TestLedgerInsertionOrder(t *testing.T) {
	ledger := NewLedger()

	ledger.AddPosition("A", 1, 10, time.Now())
	ledger.AddPosition("B", 2, 20, time.Now())
	ledger.AddPosition("C", 3, 30, time.Now())
	// Replacing B must keep it in its original slot.
	ledger.AddPosition("B", 9, 99, time.Now())

	assert.Equal(t, []string{"A", "B", "C"}, ledger.Identifiers())

	positions := ledger.Positions()
	require.Len(t, positions, 3)
	assert.Equal(t, "B", positions[1].Identifier)
	assert.Equal(t, 9.0, positions[1].Quantity)
}

func TestLedgerEmpty(t *testing.T) {
	ledger := NewLedger()

	assert.Equal(t, 0, ledger.Len())
	assert.Empty(t, ledger.Positions())
	assert.Empty(t, ledger.Identifiers())

	_, ok := ledger.Get("MISSING")
	assert.False(t, ok)
}
