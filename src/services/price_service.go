// backend/src/services/price_service.go
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/model"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const priceServiceUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// --- API Response Structs ---

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				Symbol               string  `json:"symbol"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// --- Service Implementation ---

// marketPriceService fetches current prices from a Yahoo-Finance-style chart
// API. Indian tickers use the .NS (NSE) and .BO (BSE) suffixes, e.g.
// "RELIANCE.NS". Fetched prices are cached per calendar day in the
// daily_prices table so repeated valuations don't re-hit the provider, and
// outgoing calls are rate-limited.
type marketPriceService struct {
	httpClient    http.Client
	baseURL       string
	db            *sql.DB
	limiter       *rate.Limiter
	isInitialized bool
	crumb         string
	mu            sync.Mutex
}

// NewMarketPriceService builds a PriceProvider against baseURL. db may be
// nil, which disables the daily price cache (used by tests).
func NewMarketPriceService(baseURL string, db *sql.DB) PriceProvider {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	s := &marketPriceService{
		httpClient: http.Client{
			Jar:     jar,
			Timeout: 20 * time.Second,
		},
		baseURL: baseURL,
		db:      db,
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}

	go s.initializeSession()

	return s
}

// initializeSession warms up the provider session and fetches the crumb the
// chart endpoint expects on authenticated requests.
func (s *marketPriceService) initializeSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized && s.crumb != "" {
		return
	}

	logger.L.Info("Initializing market data session and fetching crumb...")

	warmup, _ := http.NewRequest("GET", s.baseURL, nil)
	warmup.Header.Set("User-Agent", priceServiceUserAgent)
	if resp, err := s.httpClient.Do(warmup); err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	req, _ := http.NewRequest("GET", s.baseURL+"/v1/test/getcrumb", nil)
	req.Header.Set("User-Agent", priceServiceUserAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.L.Error("Failed to fetch crumb", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		s.crumb = string(bodyBytes)
		s.isInitialized = true
		logger.L.Info("Market data session initialized successfully")
	} else {
		logger.L.Warn("Failed to fetch crumb", "status", resp.Status)
	}
}

func (s *marketPriceService) ensureSession() {
	s.mu.Lock()
	needsInit := !s.isInitialized || s.crumb == ""
	s.mu.Unlock()

	if needsInit {
		s.initializeSession()
	}
}

// GetCurrentPrices resolves one quote per ticker. Every requested ticker
// gets an entry: lookups that fail in any way stay UNAVAILABLE so the
// valuation engine can fall back to cost basis.
func (s *marketPriceService) GetCurrentPrices(tickers []string) (map[string]PriceInfo, error) {
	s.ensureSession()
	results := make(map[string]PriceInfo)
	for _, ticker := range tickers {
		results[ticker] = PriceInfo{Status: PriceStatusUnavailable}
	}
	if len(tickers) == 0 {
		return results, nil
	}

	todayStr := time.Now().Format("2006-01-02")
	cached := s.cachedPrices(tickers, todayStr)

	for _, ticker := range tickers {
		if price, ok := cached[ticker]; ok {
			results[ticker] = PriceInfo{Status: PriceStatusOK, Price: price.Price, Currency: price.Currency}
			continue
		}

		s.limiter.Wait(context.Background())
		info, err := s.fetchQuote(ticker)
		if err != nil {
			logger.L.Warn("Could not get price for ticker", "ticker", ticker, "error", err)
			continue
		}
		results[ticker] = info
		s.storePrice(ticker, todayStr, info)
	}
	return results, nil
}

func (s *marketPriceService) cachedPrices(tickers []string, date string) map[string]model.DailyPrice {
	if s.db == nil {
		return nil
	}
	cached, err := model.GetPricesByTickersAndDate(s.db, tickers, date)
	if err != nil {
		logger.L.Error("Failed to get daily prices from DB", "error", err)
		return nil
	}
	return cached
}

func (s *marketPriceService) storePrice(ticker, date string, info PriceInfo) {
	if s.db == nil {
		return
	}
	model.InsertOrUpdatePrice(s.db, model.DailyPrice{
		TickerSymbol: ticker,
		Date:         date,
		Price:        info.Price,
		Currency:     info.Currency,
	})
}

// fetchQuote calls the chart endpoint for a single ticker and maps the chart
// meta block onto a PriceInfo. Fields past Price are informational only.
func (s *marketPriceService) fetchQuote(ticker string) (PriceInfo, error) {
	quoteURL := fmt.Sprintf("%s/v8/finance/chart/%s?crumb=%s", s.baseURL, ticker, s.crumb)
	req, err := http.NewRequest("GET", quoteURL, nil)
	if err != nil {
		return PriceInfo{}, err
	}
	req.Header.Set("User-Agent", priceServiceUserAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return PriceInfo{}, fmt.Errorf("failed to call chart API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		s.mu.Lock()
		s.isInitialized = false
		s.mu.Unlock()
		return PriceInfo{}, fmt.Errorf("status 401 (Unauthorized) - crumb invalid")
	}
	if resp.StatusCode != http.StatusOK {
		return PriceInfo{}, fmt.Errorf("chart API returned non-OK status %d", resp.StatusCode)
	}
	var chartData chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartData); err != nil {
		return PriceInfo{}, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if chartData.Chart.Error != nil {
		return PriceInfo{}, fmt.Errorf("chart API returned an error: %v", chartData.Chart.Error)
	}
	if len(chartData.Chart.Result) == 0 || chartData.Chart.Result[0].Meta.RegularMarketPrice == 0 {
		return PriceInfo{}, fmt.Errorf("no price data found")
	}

	meta := chartData.Chart.Result[0].Meta
	info := PriceInfo{
		Status:           PriceStatusOK,
		Price:            meta.RegularMarketPrice,
		Currency:         meta.Currency,
		DayHigh:          meta.RegularMarketDayHigh,
		DayLow:           meta.RegularMarketDayLow,
		FiftyTwoWeekHigh: meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  meta.FiftyTwoWeekLow,
	}
	if meta.ChartPreviousClose > 0 {
		info.ChangePercent = (meta.RegularMarketPrice - meta.ChartPreviousClose) / meta.ChartPreviousClose * 100
	}
	return info, nil
}
