// backend/src/services/interfaces.go
package services

import (
	"github.com/username/paisatrack/backend/src/models"
)

// Quote lookup statuses. A position whose quote is UNAVAILABLE is valued at
// its own cost basis, so provider failures degrade a metric to zero gain
// instead of aborting the valuation.
const (
	PriceStatusOK          = "OK"
	PriceStatusUnavailable = "UNAVAILABLE"
)

// PriceInfo is the result of a current-price lookup for one instrument.
// Everything past Price is informational metadata and is never used in
// valuation arithmetic.
type PriceInfo struct {
	Status           string  `json:"status"` // "OK" or "UNAVAILABLE"
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	ChangePercent    float64 `json:"change_percent,omitempty"`
	DayHigh          float64 `json:"day_high,omitempty"`
	DayLow           float64 `json:"day_low,omitempty"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low,omitempty"`
}

// PriceProvider fetches current market prices for a batch of instrument
// identifiers. Implementations must return an entry for every requested
// identifier, marking failed lookups UNAVAILABLE rather than omitting them.
type PriceProvider interface {
	GetCurrentPrices(identifiers []string) (map[string]PriceInfo, error)
}

// NavProvider fetches mutual fund NAV data. GetNavHistory returns the series
// newest-first (index 0 is the latest published NAV); an empty series means
// the scheme has no data available.
type NavProvider interface {
	GetNavHistory(schemeCode string) (models.NavSeries, error)
	SearchSchemes(query string) ([]models.SchemeInfo, error)
}

// BankBalanceProvider reports the aggregate linked-account balance for a
// user. Real account-aggregator integration is out of scope; the shipped
// implementation is a stub returning 0.
type BankBalanceProvider interface {
	GetBalance(userID string) (float64, error)
}
