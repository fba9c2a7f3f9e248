package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

// Service maintains accounts and their transaction ledger. Account balance is a
// materialized aggregate: every recorded transaction adjusts it in the same
// storage transaction.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

type CreateAccountInput struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
}

func validAccountType(t string) bool {
	switch t {
	case models.AccountTypeCard, models.AccountTypeCash, models.AccountTypeDeposit,
		models.AccountTypeCrypto, models.AccountTypeBroker:
		return true
	}
	return false
}

func (s *Service) CreateAccount(in CreateAccountInput) (*models.Account, error) {
	if in.Name == "" || in.Type == "" {
		return nil, apperr.Validation("name and type are required")
	}
	if !validAccountType(in.Type) {
		return nil, apperr.Validation("unknown account type %q", in.Type)
	}
	if in.Balance.IsNegative() {
		return nil, apperr.Validation("initial balance must not be negative")
	}
	if in.Currency == "" {
		in.Currency = "RUB"
	}
	a := &models.Account{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Type:     in.Type,
		Balance:  in.Balance,
		Currency: in.Currency,
		Icon:     in.Icon,
		Color:    in.Color,
		IsActive: true,
	}
	if err := s.store.CreateAccount(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAccount(id string) (*models.Account, error) {
	return s.store.GetAccount(id)
}

func (s *Service) ListAccounts(includeInactive bool) ([]models.Account, error) {
	return s.store.ListAccounts(includeInactive)
}

// UpdateAccountInput is a typed patch. Balance is deliberately absent: the
// aggregate may only move through recorded transactions or interest credits.
type UpdateAccountInput struct {
	Name         *string          `json:"name"`
	Icon         *string          `json:"icon"`
	Color        *string          `json:"color"`
	IsActive     *bool            `json:"isActive"`
	InterestRate *decimal.Decimal `json:"interestRate"`
}

func (s *Service) UpdateAccount(id string, in UpdateAccountInput) (*models.Account, error) {
	a, err := s.store.GetAccount(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		a.Name = *in.Name
	}
	if in.Icon != nil {
		a.Icon = *in.Icon
	}
	if in.Color != nil {
		a.Color = *in.Color
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, apperr.Validation("interest rate must not be negative")
		}
		a.InterestRate = in.InterestRate
	}
	if err := s.store.SaveAccount(a); err != nil {
		return nil, err
	}
	return a, nil
}

type RecordTransactionInput struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
	CategoryID  *string         `json:"categoryId"`
}

// RecordTransaction stores a transaction and adjusts the account balance in one
// atomic unit. Callers always supply a positive magnitude; the sign is derived
// from the transaction type, so the stored amount is negative for expenses.
func (s *Service) RecordTransaction(in RecordTransactionInput) (*models.Transaction, error) {
	if in.AccountID == "" {
		return nil, apperr.Validation("accountId is required")
	}
	if in.Type != models.TxIncome && in.Type != models.TxExpense {
		return nil, apperr.Validation("type must be income or expense")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be a positive number")
	}

	signed := in.Amount
	if in.Type == models.TxExpense {
		signed = in.Amount.Neg()
	}
	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}
	t := &models.Transaction{
		ID:          uuid.NewString(),
		Amount:      signed,
		Description: in.Description,
		Type:        in.Type,
		Date:        date,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
	}

	err := s.store.Atomic(func(tx Store) error {
		if _, err := tx.GetAccount(in.AccountID); err != nil {
			return err
		}
		if err := tx.CreateTransaction(t); err != nil {
			return err
		}
		return tx.IncrementBalance(in.AccountID, signed)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTransactions(accountID string) ([]models.Transaction, error) {
	return s.store.ListTransactions(accountID)
}
