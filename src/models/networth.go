// backend/src/models/networth.go
package models

// AssetAllocation is the share of net worth held in each asset class.
// Percentages are 0 when total net worth is 0.
type AssetAllocation struct {
	BankPercent   float64 `json:"bank_percent"`
	StocksPercent float64 `json:"stocks_percent"`
	FundsPercent  float64 `json:"funds_percent"`
}

// NetWorthSummary is the consolidated view across bank balance, the equity
// portfolio and the mutual fund portfolio.
type NetWorthSummary struct {
	BankBalance         float64         `json:"bank_balance"`
	StockPortfolioValue float64         `json:"stock_portfolio_value"`
	FundPortfolioValue  float64         `json:"fund_portfolio_value"`
	TotalNetWorth       float64         `json:"total_net_worth"`
	Allocation          AssetAllocation `json:"asset_allocation"`
}

// CombinedPerformance merges invested/current/gain across equities and
// funds. The bank balance is excluded: it has no cost basis, so it cannot
// contribute to gain/loss.
type CombinedPerformance struct {
	TotalInvested    float64          `json:"total_invested"`
	TotalCurrent     float64          `json:"total_current"`
	TotalGain        float64          `json:"total_gain"`
	TotalGainPercent float64          `json:"total_gain_percent"`
	StockDetails     PortfolioSummary `json:"stock_details"`
	FundDetails      PortfolioSummary `json:"fund_details"`
}
