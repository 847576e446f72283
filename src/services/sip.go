// backend/src/services/sip.go
package services

import (
	"fmt"
	"math"

	"github.com/username/paisatrack/backend/src/models"
)

// SIPResult is the outcome of a systematic-investment-plan simulation: a
// fixed contribution invested at each of the N most recent NAVs.
type SIPResult struct {
	MonthlyContribution      float64 `json:"monthly_investment"`
	Months                   int     `json:"months"`
	TotalInvested            float64 `json:"total_invested"`
	UnitsPurchased           float64 `json:"units_purchased"`
	CurrentNav               float64 `json:"current_nav"`
	CurrentValue             float64 `json:"current_value"`
	Gain                     float64 `json:"gain"`
	GainPercent              float64 `json:"gain_percent"`
	AnnualizedReturnEstimate float64 `json:"annualized_return_estimate"`
}

// InsufficientHistoryError reports that a NAV series is too short for the
// requested number of contribution periods. It carries the count actually
// available so callers can clamp and retry.
type InsufficientHistoryError struct {
	Requested int
	Available int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient NAV history: requested %d periods, only %d available", e.Requested, e.Available)
}

// SimulateSIP simulates investing a fixed contribution at each of the months
// most recent NAVs in series (which must be ordered newest-first) and values
// the accumulated units at the latest NAV.
//
// Each of the N most recent NAV entries is treated as one monthly
// contribution period regardless of the actual date spacing between entries.
// For a daily-published series this overstates the compounding horizon; the
// assumption is inherited from the contribution model and is documented
// rather than corrected here.
//
// AnnualizedReturnEstimate is a simplified compounding-rate annualization,
// ((1+r)^(12/N) - 1) × 100 over the total return r. It is NOT an XIRR: it
// ignores the dates of the individual cash flows.
func SimulateSIP(series models.NavSeries, contribution float64, months int) (*SIPResult, error) {
	if len(series) < months || len(series) == 0 {
		return nil, &InsufficientHistoryError{Requested: months, Available: len(series)}
	}

	var unitsPurchased float64
	for i := 0; i < months; i++ {
		if series[i].Nav > 0 {
			unitsPurchased += contribution / series[i].Nav
		}
	}

	latestNav := series[0].Nav
	currentValue := unitsPurchased * latestNav
	totalInvested := contribution * float64(months)
	gain := currentValue - totalInvested

	gainPercent := 0.0
	if totalInvested > 0 {
		gainPercent = gain / totalInvested * 100
	}

	return &SIPResult{
		MonthlyContribution:      contribution,
		Months:                   months,
		TotalInvested:            totalInvested,
		UnitsPurchased:           unitsPurchased,
		CurrentNav:               latestNav,
		CurrentValue:             currentValue,
		Gain:                     gain,
		GainPercent:              gainPercent,
		AnnualizedReturnEstimate: estimateAnnualizedReturn(currentValue, totalInvested, months),
	}, nil
}

// estimateAnnualizedReturn compounds the total return over 12/months. Rough
// estimate only; see the SimulateSIP doc comment.
func estimateAnnualizedReturn(currentValue, totalInvested float64, months int) float64 {
	if totalInvested == 0 || months == 0 {
		return 0
	}
	totalReturn := (currentValue - totalInvested) / totalInvested
	return (math.Pow(1+totalReturn, 12/float64(months)) - 1) * 100
}
