// backend/src/services/valuation.go
package services

import (
	"github.com/username/paisatrack/backend/src/models"
)

// ValuatePortfolio computes per-position and aggregate metrics for a ledger
// snapshot against a batch of already-fetched quotes. It is a pure function:
// it never mutates the ledger, performs no I/O, and is safe to call
// concurrently over independent snapshots.
//
// The resolved price for a position is the quote price when the quote is
// present with status OK; otherwise the position's own unit cost, which
// values it at zero gain. Allocation percentages are computed against the
// final portfolio total, so the walk is two passes: totals first, then
// allocation.
func ValuatePortfolio(ledger *models.Ledger, quotes map[string]PriceInfo) models.PortfolioSummary {
	summary := models.PortfolioSummary{
		Holdings: make(map[string]models.ValuationResult, ledger.Len()),
	}

	positions := ledger.Positions()
	for _, pos := range positions {
		currentPrice := pos.UnitCost
		if quote, ok := quotes[pos.Identifier]; ok && quote.Status == PriceStatusOK {
			currentPrice = quote.Price
		}

		investedValue := pos.Quantity * pos.UnitCost
		currentValue := pos.Quantity * currentPrice
		gainLoss := currentValue - investedValue

		gainLossPercent := 0.0
		if investedValue > 0 {
			gainLossPercent = gainLoss / investedValue * 100
		}

		summary.TotalInvested += investedValue
		summary.TotalCurrent += currentValue

		summary.Holdings[pos.Identifier] = models.ValuationResult{
			Quantity:        pos.Quantity,
			UnitCost:        pos.UnitCost,
			CurrentPrice:    currentPrice,
			InvestedValue:   investedValue,
			CurrentValue:    currentValue,
			GainLoss:        gainLoss,
			GainLossPercent: gainLossPercent,
		}
	}

	// Second pass: allocation needs the grand total.
	if summary.TotalCurrent > 0 {
		for id, result := range summary.Holdings {
			result.AllocationPercent = result.CurrentValue / summary.TotalCurrent * 100
			summary.Holdings[id] = result
		}
	}

	summary.TotalGainLoss = summary.TotalCurrent - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.TotalGainLossPercent = summary.TotalGainLoss / summary.TotalInvested * 100
	}

	return summary
}
