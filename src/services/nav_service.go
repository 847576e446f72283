// backend/src/services/nav_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/models"
)

// --- API Response Structs ---

// The NAV API (mfapi.in shape) publishes NAVs as strings, newest entry
// first, with dates formatted DD-MM-YYYY.
type navHistoryResponse struct {
	Meta struct {
		SchemeCode json.Number `json:"scheme_code"`
		SchemeName string      `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		Nav  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

type schemeSearchResult struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}

// --- Service Implementation ---

// navService fetches mutual fund NAV histories and scheme search results.
// Histories only change once per business day, so both lookups go through a
// TTL cache.
type navService struct {
	httpClient http.Client
	baseURL    string
	navCache   *cache.Cache
}

// NewNavService builds a NavProvider against baseURL, caching NAV histories
// and search results for cacheTTL.
func NewNavService(baseURL string, cacheTTL time.Duration) NavProvider {
	return &navService{
		httpClient: http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		navCache:   cache.New(cacheTTL, 2*cacheTTL),
	}
}

// GetNavHistory returns the scheme's NAV series, newest-first. Entries with
// unparseable or non-positive NAVs are skipped; an empty series means the
// scheme has no usable data.
func (s *navService) GetNavHistory(schemeCode string) (models.NavSeries, error) {
	cacheKey := "nav-" + schemeCode
	if cached, found := s.navCache.Get(cacheKey); found {
		return cached.(models.NavSeries), nil
	}

	resp, err := s.httpClient.Get(fmt.Sprintf("%s/mf/%s", s.baseURL, schemeCode))
	if err != nil {
		return nil, fmt.Errorf("failed to call NAV API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NAV API returned non-OK status %d", resp.StatusCode)
	}

	var historyData navHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&historyData); err != nil {
		return nil, fmt.Errorf("failed to decode NAV response: %w", err)
	}

	series := make(models.NavSeries, 0, len(historyData.Data))
	for _, entry := range historyData.Data {
		nav, err := strconv.ParseFloat(entry.Nav, 64)
		if err != nil || nav <= 0 {
			logger.L.Warn("Skipping unusable NAV entry", "schemeCode", schemeCode, "date", entry.Date, "nav", entry.Nav)
			continue
		}
		series = append(series, models.NavPoint{Date: entry.Date, Nav: nav})
	}

	s.navCache.Set(cacheKey, series, cache.DefaultExpiration)
	return series, nil
}

// SearchSchemes finds schemes whose name matches query.
func (s *navService) SearchSchemes(query string) ([]models.SchemeInfo, error) {
	cacheKey := "search-" + query
	if cached, found := s.navCache.Get(cacheKey); found {
		return cached.([]models.SchemeInfo), nil
	}

	resp, err := s.httpClient.Get(fmt.Sprintf("%s/mf/search?q=%s", s.baseURL, url.QueryEscape(query)))
	if err != nil {
		return nil, fmt.Errorf("failed to call scheme search API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scheme search API returned non-OK status %d", resp.StatusCode)
	}

	var searchData []schemeSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&searchData); err != nil {
		return nil, fmt.Errorf("failed to decode scheme search response: %w", err)
	}

	schemes := make([]models.SchemeInfo, 0, len(searchData))
	for _, result := range searchData {
		schemes = append(schemes, models.SchemeInfo{
			SchemeCode: result.SchemeCode.String(),
			SchemeName: result.SchemeName,
		})
	}

	s.navCache.Set(cacheKey, schemes, cache.DefaultExpiration)
	return schemes, nil
}
