// backend/src/services/networth_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/paisatrack/backend/src/models"
)

func TestAggregateNetWorth(t *testing.T) {
	stocks := models.PortfolioSummary{TotalCurrent: 50000}
	funds := models.PortfolioSummary{TotalCurrent: 30000}

	summary := AggregateNetWorth(0, stocks, funds)

	assert.InDelta(t, 80000.0, summary.TotalNetWorth, 1e-9)
	assert.InDelta(t, 62.5, summary.Allocation.StocksPercent, 1e-9)
	assert.InDelta(t, 37.5, summary.Allocation.FundsPercent, 1e-9)
	assert.InDelta(t, 0.0, summary.Allocation.BankPercent, 1e-9)
}

func TestAggregateNetWorthWithBankBalance(t *testing.T) {
	stocks := models.PortfolioSummary{TotalCurrent: 60000}
	funds := models.PortfolioSummary{TotalCurrent: 20000}

	summary := AggregateNetWorth(20000, stocks, funds)

	assert.InDelta(t, 100000.0, summary.TotalNetWorth, 1e-9)
	assert.InDelta(t, 20.0, summary.Allocation.BankPercent, 1e-9)
	assert.InDelta(t, 60.0, summary.Allocation.StocksPercent, 1e-9)
	assert.InDelta(t, 20.0, summary.Allocation.FundsPercent, 1e-9)

	total := summary.Allocation.BankPercent + summary.Allocation.StocksPercent + summary.Allocation.FundsPercent
	assert.InDelta(t, 100.0, total, 1e-6)
}

func TestAggregateNetWorthZeroTotal(t *testing.T) {
	summary := AggregateNetWorth(0, models.PortfolioSummary{}, models.PortfolioSummary{})

	assert.Equal(t, 0.0, summary.TotalNetWorth)
	assert.Equal(t, 0.0, summary.Allocation.BankPercent)
	assert.Equal(t, 0.0, summary.Allocation.StocksPercent)
	assert.Equal(t, 0.0, summary.Allocation.FundsPercent)
}

func TestCombinePerformance(t *testing.T) {
	stocks := models.PortfolioSummary{TotalInvested: 40000, TotalCurrent: 44000}
	funds := models.PortfolioSummary{TotalInvested: 10000, TotalCurrent: 11000}

	performance := CombinePerformance(stocks, funds)

	assert.InDelta(t, 50000.0, performance.TotalInvested, 1e-9)
	assert.InDelta(t, 55000.0, performance.TotalCurrent, 1e-9)
	assert.InDelta(t, 5000.0, performance.TotalGain, 1e-9)
	assert.InDelta(t, 10.0, performance.TotalGainPercent, 1e-9)
	assert.Equal(t, stocks, performance.StockDetails)
	assert.Equal(t, funds, performance.FundDetails)
}

func TestCombinePerformanceZeroInvested(t *testing.T) {
	performance := CombinePerformance(models.PortfolioSummary{}, models.PortfolioSummary{})
	assert.Equal(t, 0.0, performance.TotalGainPercent)
}

// --- service-level tests with fake providers ---

type fakePriceProvider struct {
	prices map[string]float64
	err    error
}

func (f *fakePriceProvider) GetCurrentPrices(identifiers []string) (map[string]PriceInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make(map[string]PriceInfo)
	for _, id := range identifiers {
		if price, ok := f.prices[id]; ok {
			results[id] = PriceInfo{Status: PriceStatusOK, Price: price, Currency: "INR"}
		} else {
			results[id] = PriceInfo{Status: PriceStatusUnavailable}
		}
	}
	return results, nil
}

type fakeNavProvider struct {
	histories map[string]models.NavSeries
	schemes   []models.SchemeInfo
	err       error
}

func (f *fakeNavProvider) GetNavHistory(schemeCode string) (models.NavSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.histories[schemeCode], nil
}

func (f *fakeNavProvider) SearchSchemes(query string) ([]models.SchemeInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schemes, nil
}

type fakeBankProvider struct {
	balance float64
	err     error
}

func (f *fakeBankProvider) GetBalance(userID string) (float64, error) {
	return f.balance, f.err
}

func TestNetWorthServiceGetNetWorth(t *testing.T) {
	prices := &fakePriceProvider{prices: map[string]float64{"RELIANCE.NS": 2500}}
	navs := &fakeNavProvider{histories: map[string]models.NavSeries{
		"119551": {{Date: "21-08-2026", Nav: 150}},
	}}

	portfolioService := NewPortfolioService(prices, navs)
	portfolioService.AddStockHolding("RELIANCE.NS", 20, 2500, time.Now())
	portfolioService.AddFundHolding("119551", 200, 25000)

	netWorthService := NewNetWorthService(portfolioService, &fakeBankProvider{balance: 0})

	summary, err := netWorthService.GetNetWorth("user-1")
	require.NoError(t, err)

	assert.InDelta(t, 50000.0, summary.StockPortfolioValue, 1e-9) // 20 × 2500
	assert.InDelta(t, 30000.0, summary.FundPortfolioValue, 1e-9)  // 200 × 150
	assert.InDelta(t, 80000.0, summary.TotalNetWorth, 1e-9)
	assert.InDelta(t, 62.5, summary.Allocation.StocksPercent, 1e-9)
	assert.InDelta(t, 37.5, summary.Allocation.FundsPercent, 1e-9)
}

func TestNetWorthServiceBankFailureDegradesToZero(t *testing.T) {
	portfolioService := NewPortfolioService(&fakePriceProvider{}, &fakeNavProvider{})
	netWorthService := NewNetWorthService(portfolioService, &fakeBankProvider{err: errors.New("aggregator down")})

	summary, err := netWorthService.GetNetWorth("user-1")
	require.NoError(t, err, "a failed balance lookup must degrade, not fail")
	assert.Equal(t, 0.0, summary.BankBalance)
}
