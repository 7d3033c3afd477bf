package services

import (
	"fmt"

	"tradepost/internal/repos"
)

// TreasuryService is the value-transfer primitive behind the ledger: it
// moves credits between principal accounts. It satisfies ledger.Transferor.
type TreasuryService struct {
	Accounts *repos.AccountRepo
}

func NewTreasuryService(accounts *repos.AccountRepo) *TreasuryService {
	return &TreasuryService{Accounts: accounts}
}

func (s *TreasuryService) Transfer(from, to string, amount int64) error {
	if err := s.Accounts.Transfer(from, to, amount); err != nil {
		return fmt.Errorf("transfer %d from %s to %s: %w", amount, from, to, err)
	}
	return nil
}

func (s *TreasuryService) Balance(principalID string) (int64, error) {
	return s.Accounts.Balance(principalID)
}
