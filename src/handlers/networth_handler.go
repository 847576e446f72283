// backend/src/handlers/networth_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/username/paisatrack/backend/src/services"
	"github.com/username/paisatrack/backend/src/utils"
)

type NetWorthHandler struct {
	netWorthService *services.NetWorthService
}

func NewNetWorthHandler(netWorthService *services.NetWorthService) *NetWorthHandler {
	return &NetWorthHandler{
		netWorthService: netWorthService,
	}
}

func (h *NetWorthHandler) HandleGetNetWorth(w http.ResponseWriter, r *http.Request) {
	// Single-user deployment for now; the bank provider stub ignores the ID
	// anyway, but the contract keeps the user dimension for when account
	// aggregation lands.
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}

	summary, err := h.netWorthService.GetNetWorth(userID)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing net worth: %v", err), http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, summary)
}

func (h *NetWorthHandler) HandleGetPerformance(w http.ResponseWriter, r *http.Request) {
	performance, err := h.netWorthService.GetPerformance()
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing combined performance: %v", err), http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, performance)
}
