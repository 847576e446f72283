// backend/src/services/networth.go
package services

import (
	"fmt"

	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/models"
)

// AggregateNetWorth composes the bank balance and the current values of the
// equity and fund portfolios into a single net-worth figure with a per-class
// allocation breakdown. Pure function; allocation percentages are 0 when the
// total is 0.
func AggregateNetWorth(bankBalance float64, stocks, funds models.PortfolioSummary) models.NetWorthSummary {
	total := bankBalance + stocks.TotalCurrent + funds.TotalCurrent

	var allocation models.AssetAllocation
	if total > 0 {
		allocation = models.AssetAllocation{
			BankPercent:   bankBalance / total * 100,
			StocksPercent: stocks.TotalCurrent / total * 100,
			FundsPercent:  funds.TotalCurrent / total * 100,
		}
	}

	return models.NetWorthSummary{
		BankBalance:         bankBalance,
		StockPortfolioValue: stocks.TotalCurrent,
		FundPortfolioValue:  funds.TotalCurrent,
		TotalNetWorth:       total,
		Allocation:          allocation,
	}
}

// CombinePerformance merges invested/current/gain across the equity and fund
// portfolios. The bank balance is excluded: it has no cost basis.
func CombinePerformance(stocks, funds models.PortfolioSummary) models.CombinedPerformance {
	totalInvested := stocks.TotalInvested + funds.TotalInvested
	totalCurrent := stocks.TotalCurrent + funds.TotalCurrent
	totalGain := totalCurrent - totalInvested

	gainPercent := 0.0
	if totalInvested > 0 {
		gainPercent = totalGain / totalInvested * 100
	}

	return models.CombinedPerformance{
		TotalInvested:    totalInvested,
		TotalCurrent:     totalCurrent,
		TotalGain:        totalGain,
		TotalGainPercent: gainPercent,
		StockDetails:     stocks,
		FundDetails:      funds,
	}
}

// NetWorthService resolves the inputs to the aggregation: portfolio
// valuations from the portfolio service and the (stubbed) bank balance.
type NetWorthService struct {
	portfolioService *PortfolioService
	bankProvider     BankBalanceProvider
}

func NewNetWorthService(portfolioService *PortfolioService, bankProvider BankBalanceProvider) *NetWorthService {
	return &NetWorthService{
		portfolioService: portfolioService,
		bankProvider:     bankProvider,
	}
}

// GetNetWorth values both portfolios and folds in the user's bank balance.
func (s *NetWorthService) GetNetWorth(userID string) (models.NetWorthSummary, error) {
	bankBalance, err := s.bankProvider.GetBalance(userID)
	if err != nil {
		// A failed balance lookup degrades to 0, mirroring how unavailable
		// quotes degrade a position to zero gain.
		logger.L.Warn("Bank balance unavailable, using 0", "userID", userID, "error", err)
		bankBalance = 0
	}

	stocks, err := s.portfolioService.StockPortfolioMetrics()
	if err != nil {
		return models.NetWorthSummary{}, fmt.Errorf("valuing stock portfolio: %w", err)
	}
	funds, err := s.portfolioService.FundPortfolioMetrics()
	if err != nil {
		return models.NetWorthSummary{}, fmt.Errorf("valuing fund portfolio: %w", err)
	}

	return AggregateNetWorth(bankBalance, stocks, funds), nil
}

// GetPerformance returns the combined invested/current/gain view across both
// portfolios.
func (s *NetWorthService) GetPerformance() (models.CombinedPerformance, error) {
	stocks, err := s.portfolioService.StockPortfolioMetrics()
	if err != nil {
		return models.CombinedPerformance{}, fmt.Errorf("valuing stock portfolio: %w", err)
	}
	funds, err := s.portfolioService.FundPortfolioMetrics()
	if err != nil {
		return models.CombinedPerformance{}, fmt.Errorf("valuing fund portfolio: %w", err)
	}
	return CombinePerformance(stocks, funds), nil
}
