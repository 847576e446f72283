// backend/src/models/portfolio.go
package models

// ValuationResult holds the computed metrics for a single position.
// InvestedValue is quantity × unit cost; CurrentValue is quantity × the
// resolved current price (which falls back to unit cost when no quote is
// available, so the position reports zero gain rather than disappearing).
type ValuationResult struct {
	Quantity          float64 `json:"quantity"`
	UnitCost          float64 `json:"unit_cost"`
	CurrentPrice      float64 `json:"current_price"`
	InvestedValue     float64 `json:"invested_value"`
	CurrentValue      float64 `json:"current_value"`
	GainLoss          float64 `json:"gain_loss"`
	GainLossPercent   float64 `json:"gain_loss_percent"`
	AllocationPercent float64 `json:"allocation_percent"`
}

// PortfolioSummary aggregates the valuation of a whole ledger.
type PortfolioSummary struct {
	TotalInvested        float64                    `json:"total_invested"`
	TotalCurrent         float64                    `json:"total_current"`
	TotalGainLoss        float64                    `json:"total_gain_loss"`
	TotalGainLossPercent float64                    `json:"total_gain_loss_percent"`
	Holdings             map[string]ValuationResult `json:"holdings"`
}
