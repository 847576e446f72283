// backend/src/services/bank_service.go
package services

import (
	"github.com/username/paisatrack/backend/src/logger"
)

// stubBankService is a placeholder BankBalanceProvider. Account-aggregator
// integration (linking, consent, statement fetch) lives outside this
// service; until it is wired in, every user's bank balance reports as 0 and
// the net-worth breakdown shows a 0% cash allocation.
type stubBankService struct{}

func NewStubBankService() BankBalanceProvider {
	return &stubBankService{}
}

func (s *stubBankService) GetBalance(userID string) (float64, error) {
	logger.L.Debug("Bank balance requested from stub provider", "userID", userID)
	return 0, nil
}
