// backend/src/services/sip_test.go
package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/paisatrack/backend/src/models"
)

func navSeries(navs ...float64) models.NavSeries {
	series := make(models.NavSeries, len(navs))
	for i, nav := range navs {
		series[i] = models.NavPoint{Date: "01-01-2024", Nav: nav}
	}
	return series
}

func TestSimulateSIPThreeMonths(t *testing.T) {
	// Newest-first: the latest NAV is 110.
	series := navSeries(110, 105, 100)

	result, err := SimulateSIP(series, 1000, 3)
	require.NoError(t, err)

	expectedUnits := 1000.0/110 + 1000.0/105 + 1000.0/100
	assert.InDelta(t, expectedUnits, result.UnitsPurchased, 1e-9)       // ≈ 28.6147
	assert.InDelta(t, expectedUnits*110, result.CurrentValue, 1e-9)     // ≈ 3147.6
	assert.InDelta(t, 3000.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, expectedUnits*110-3000, result.Gain, 1e-9)        // ≈ 147.6
	assert.InDelta(t, 4.92, result.GainPercent, 0.01)
	assert.InDelta(t, 110.0, result.CurrentNav, 1e-9)

	expectedRate := (result.CurrentValue - 3000) / 3000
	expectedAnnualized := (math.Pow(1+expectedRate, 12.0/3.0) - 1) * 100
	assert.InDelta(t, expectedAnnualized, result.AnnualizedReturnEstimate, 1e-9)
}

func TestSimulateSIPInsufficientHistory(t *testing.T) {
	series := navSeries(110, 105)

	result, err := SimulateSIP(series, 1000, 5)
	require.Error(t, err)
	assert.Nil(t, result, "no partial simulation on insufficient history")

	var insufficientErr *InsufficientHistoryError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, 5, insufficientErr.Requested)
	assert.Equal(t, 2, insufficientErr.Available)
}

func TestSimulateSIPEmptySeries(t *testing.T) {
	_, err := SimulateSIP(models.NavSeries{}, 1000, 0)

	var insufficientErr *InsufficientHistoryError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, 0, insufficientErr.Available)
}

func TestSimulateSIPZeroMonths(t *testing.T) {
	series := navSeries(110, 105, 100)

	result, err := SimulateSIP(series, 1000, 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TotalInvested)
	assert.Equal(t, 0.0, result.UnitsPurchased)
	assert.Equal(t, 0.0, result.CurrentValue)
	assert.Equal(t, 0.0, result.GainPercent, "zero invested must not divide")
	assert.Equal(t, 0.0, result.AnnualizedReturnEstimate, "zero months must not divide")
}

func TestSimulateSIPFlatNav(t *testing.T) {
	series := navSeries(100, 100, 100, 100)

	result, err := SimulateSIP(series, 500, 4)
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, 2000.0, result.CurrentValue, 1e-9)
	assert.InDelta(t, 0.0, result.Gain, 1e-9)
	assert.InDelta(t, 0.0, result.AnnualizedReturnEstimate, 1e-9)
}
