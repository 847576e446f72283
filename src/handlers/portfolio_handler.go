// backend/src/handlers/portfolio_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/services"
	"github.com/username/paisatrack/backend/src/utils"
)

type PortfolioHandler struct {
	portfolioService *services.PortfolioService
}

func NewPortfolioHandler(portfolioService *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

type addStockRequest struct {
	Ticker        string  `json:"ticker"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD, optional
}

type addFundRequest struct {
	SchemeCode     string  `json:"scheme_code"`
	Units          float64 `json:"units"`
	AmountInvested float64 `json:"amount_invested"`
}

func (h *PortfolioHandler) HandleAddStockHolding(w http.ResponseWriter, r *http.Request) {
	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Ticker == "" {
		utils.SendJSONError(w, "ticker is required", http.StatusBadRequest)
		return
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			utils.SendJSONError(w, "invalid purchase_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		purchaseDate = parsed
	}

	h.portfolioService.AddStockHolding(req.Ticker, req.Quantity, req.PurchasePrice, purchaseDate)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Stock holding added"})
}

func (h *PortfolioHandler) HandleAddFundHolding(w http.ResponseWriter, r *http.Request) {
	var req addFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SchemeCode == "" {
		utils.SendJSONError(w, "scheme_code is required", http.StatusBadRequest)
		return
	}

	h.portfolioService.AddFundHolding(req.SchemeCode, req.Units, req.AmountInvested)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Fund holding added"})
}

func (h *PortfolioHandler) HandleGetStockPortfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.StockPortfolioMetrics()
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing stock portfolio metrics: %v", err), http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, summary)
}

func (h *PortfolioHandler) HandleGetFundPortfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.FundPortfolioMetrics()
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing fund portfolio metrics: %v", err), http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, summary)
}

// HandleSimulateSIP runs the SIP simulation. Insufficient NAV history is
// reported as a structured 422 carrying the available period count, so a
// client can clamp the requested months and retry.
func (h *PortfolioHandler) HandleSimulateSIP(w http.ResponseWriter, r *http.Request) {
	schemeCode := r.URL.Query().Get("scheme_code")
	if schemeCode == "" {
		utils.SendJSONError(w, "scheme_code is required", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		utils.SendJSONError(w, "amount must be a positive number", http.StatusBadRequest)
		return
	}
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil || months < 0 {
		utils.SendJSONError(w, "months must be a non-negative integer", http.StatusBadRequest)
		return
	}

	result, err := h.portfolioService.SimulateSIP(schemeCode, amount, months)
	if err != nil {
		var insufficientErr *services.InsufficientHistoryError
		if errors.As(err, &insufficientErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":            insufficientErr.Error(),
				"requested_months": insufficientErr.Requested,
				"available_months": insufficientErr.Available,
			})
			return
		}
		logger.L.Error("SIP simulation failed", "schemeCode", schemeCode, "error", err)
		utils.SendJSONError(w, "Failed to simulate SIP returns", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, result)
}

func (h *PortfolioHandler) HandleSearchSchemes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.SendJSONError(w, "q is required", http.StatusBadRequest)
		return
	}
	schemes, err := h.portfolioService.SearchSchemes(query)
	if err != nil {
		logger.L.Error("Scheme search failed", "query", query, "error", err)
		utils.SendJSONError(w, "Failed to search schemes", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, schemes)
}
