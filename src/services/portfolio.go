// backend/src/services/portfolio.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/models"
)

// PortfolioService owns the equity and mutual fund ledgers and wires them to
// the price/NAV providers. The valuation core is lock-free and pure, so the
// service is responsible for serializing ledger writes against valuation
// reads; it does that with a single RWMutex around both ledgers.
type PortfolioService struct {
	mu     sync.RWMutex
	stocks *models.Ledger
	funds  *models.Ledger

	priceProvider PriceProvider
	navProvider   NavProvider
}

func NewPortfolioService(priceProvider PriceProvider, navProvider NavProvider) *PortfolioService {
	return &PortfolioService{
		stocks:        models.NewLedger(),
		funds:         models.NewLedger(),
		priceProvider: priceProvider,
		navProvider:   navProvider,
	}
}

// AddStockHolding records an equity position. Re-adding a ticker replaces
// the prior holding (last write wins).
func (s *PortfolioService) AddStockHolding(ticker string, quantity, purchasePrice float64, purchaseDate time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks.AddPosition(ticker, quantity, purchasePrice, purchaseDate)
	logger.L.Info("Stock holding added", "ticker", ticker, "quantity", quantity, "purchasePrice", purchasePrice)
}

// AddFundHolding records a mutual fund position from units and the total
// amount invested. The per-unit cost basis is amount/units; zero units yield
// a zero cost basis (and a zero invested value downstream).
func (s *PortfolioService) AddFundHolding(schemeCode string, units, amountInvested float64) {
	unitCost := 0.0
	if units > 0 {
		unitCost = amountInvested / units
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funds.AddPosition(schemeCode, units, unitCost, time.Now())
	logger.L.Info("Fund holding added", "schemeCode", schemeCode, "units", units, "amountInvested", amountInvested)
}

// StockHoldings returns the equity positions in insertion order.
func (s *PortfolioService) StockHoldings() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stocks.Positions()
}

// FundHoldings returns the fund positions in insertion order.
func (s *PortfolioService) FundHoldings() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.funds.Positions()
}

// StockPortfolioMetrics fetches one quote per held ticker and values the
// equity ledger. A quote the provider could not resolve leaves its position
// valued at cost basis; a wholesale provider failure degrades every position
// that way rather than failing the valuation.
func (s *PortfolioService) StockPortfolioMetrics() (models.PortfolioSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stocks.Len() == 0 {
		return ValuatePortfolio(s.stocks, nil), nil
	}

	quotes, err := s.priceProvider.GetCurrentPrices(s.stocks.Identifiers())
	if err != nil {
		logger.L.Warn("Price provider failed, valuing holdings at cost basis", "error", err)
	}
	return ValuatePortfolio(s.stocks, quotes), nil
}

// FundPortfolioMetrics resolves the latest NAV per held scheme and values
// the fund ledger. A scheme with no NAV history is treated as an unavailable
// quote, falling back to cost basis.
func (s *PortfolioService) FundPortfolioMetrics() (models.PortfolioSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes := make(map[string]PriceInfo, s.funds.Len())
	for _, schemeCode := range s.funds.Identifiers() {
		quotes[schemeCode] = PriceInfo{Status: PriceStatusUnavailable}

		series, err := s.navProvider.GetNavHistory(schemeCode)
		if err != nil {
			logger.L.Warn("NAV lookup failed, valuing scheme at cost basis", "schemeCode", schemeCode, "error", err)
			continue
		}
		if nav, ok := series.Latest(); ok {
			quotes[schemeCode] = PriceInfo{Status: PriceStatusOK, Price: nav, Currency: "INR"}
		}
	}
	return ValuatePortfolio(s.funds, quotes), nil
}

// SimulateSIP runs the systematic-investment simulation for a scheme over
// the given number of monthly contribution periods.
func (s *PortfolioService) SimulateSIP(schemeCode string, contribution float64, months int) (*SIPResult, error) {
	series, err := s.navProvider.GetNavHistory(schemeCode)
	if err != nil {
		return nil, fmt.Errorf("fetching NAV history for scheme %s: %w", schemeCode, err)
	}
	return SimulateSIP(series, contribution, months)
}

// SearchSchemes proxies the NAV provider's scheme search.
func (s *PortfolioService) SearchSchemes(query string) ([]models.SchemeInfo, error) {
	return s.navProvider.SearchSchemes(query)
}
