// backend/src/handlers/networth_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/paisatrack/backend/src/models"
	"github.com/username/paisatrack/backend/src/services"
)

type stubBankProvider struct {
	balance float64
}

func (s *stubBankProvider) GetBalance(userID string) (float64, error) {
	return s.balance, nil
}

func TestHandleGetNetWorth(t *testing.T) {
	portfolioService := services.NewPortfolioService(
		&stubPriceProvider{prices: map[string]float64{"RELIANCE.NS": 2500}},
		&stubNavProvider{histories: map[string]models.NavSeries{
			"119551": {{Date: "21-08-2026", Nav: 150}},
		}},
	)
	portfolioService.AddStockHolding("RELIANCE.NS", 20, 2500, time.Now())
	portfolioService.AddFundHolding("119551", 200, 25000)

	netWorthService := services.NewNetWorthService(portfolioService, &stubBankProvider{})
	handler := NewNetWorthHandler(netWorthService)

	req := httptest.NewRequest("GET", "/api/networth", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetNetWorth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.NetWorthSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 80000.0, summary.TotalNetWorth, 1e-9)
	assert.InDelta(t, 62.5, summary.Allocation.StocksPercent, 1e-9)
	assert.InDelta(t, 37.5, summary.Allocation.FundsPercent, 1e-9)
	assert.InDelta(t, 0.0, summary.Allocation.BankPercent, 1e-9)
}

func TestHandleGetPerformance(t *testing.T) {
	portfolioService := services.NewPortfolioService(
		&stubPriceProvider{prices: map[string]float64{"TCS.NS": 3850}},
		&stubNavProvider{},
	)
	portfolioService.AddStockHolding("TCS.NS", 10, 3500, time.Now())

	netWorthService := services.NewNetWorthService(portfolioService, &stubBankProvider{})
	handler := NewNetWorthHandler(netWorthService)

	req := httptest.NewRequest("GET", "/api/performance", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetPerformance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var performance models.CombinedPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &performance))
	assert.InDelta(t, 35000.0, performance.TotalInvested, 1e-9)
	assert.InDelta(t, 38500.0, performance.TotalCurrent, 1e-9)
	assert.InDelta(t, 10.0, performance.TotalGainPercent, 1e-9)
}
