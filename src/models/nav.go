// backend/src/models/nav.go
package models

// NavPoint is a single published NAV for a mutual fund scheme.
type NavPoint struct {
	Date string  `json:"date"` // DD-MM-YYYY, as published by the NAV provider
	Nav  float64 `json:"nav"`
}

// NavSeries is a NAV history ordered newest-first: index 0 is the latest
// available NAV. Providers must return series in this order.
type NavSeries []NavPoint

// Latest returns the most recent NAV, or false for an empty series.
func (s NavSeries) Latest() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0].Nav, true
}

// SchemeInfo identifies a mutual fund scheme in provider search results.
type SchemeInfo struct {
	SchemeCode string `json:"scheme_code"`
	SchemeName string `json:"scheme_name"`
}
