// backend/src/models/ledger.go
package models

import "time"

// Position is a single owned holding: an instrument identifier (ticker
// symbol or fund scheme code), the number of units held, and the per-unit
// cost basis.
type Position struct {
	Identifier string    `json:"identifier"`
	Quantity   float64   `json:"quantity"`
	UnitCost   float64   `json:"unit_cost"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// Ledger is an insertion-ordered collection of positions keyed by
// instrument identifier. It is an owned, in-memory structure: created empty,
// grown only through AddPosition, never persisted. Callers that share a
// Ledger across goroutines must serialize writes against reads themselves.
type Ledger struct {
	order     []string
	positions map[string]Position
}

func NewLedger() *Ledger {
	return &Ledger{positions: make(map[string]Position)}
}

// AddPosition inserts or replaces the position for identifier. Re-adding an
// identifier replaces the prior holding outright (last write wins, no merge)
// while keeping its original place in iteration order. Quantities are not
// validated; a zero quantity simply values to zero downstream.
func (l *Ledger) AddPosition(identifier string, quantity, unitCost float64, acquiredAt time.Time) {
	if _, exists := l.positions[identifier]; !exists {
		l.order = append(l.order, identifier)
	}
	l.positions[identifier] = Position{
		Identifier: identifier,
		Quantity:   quantity,
		UnitCost:   unitCost,
		AcquiredAt: acquiredAt,
	}
}

// Positions returns all positions in insertion order.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.positions[id])
	}
	return out
}

// Identifiers returns the ledger's instrument identifiers in insertion order.
func (l *Ledger) Identifiers() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Get returns the position for identifier, if present.
func (l *Ledger) Get(identifier string) (Position, bool) {
	p, ok := l.positions[identifier]
	return p, ok
}

func (l *Ledger) Len() int {
	return len(l.order)
}
