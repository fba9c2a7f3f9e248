package goals

import (
	"time"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

// Service tracks savings goals and applies contributions, which debit a source
// account and credit the goal in one atomic unit.
type Service struct {
	store ledger.Store
	now   func() time.Time
}

func NewService(store ledger.Store) *Service {
	return &Service{store: store, now: time.Now}
}

type CreateGoalInput struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Description  string          `json:"description"`
	TargetDate   *time.Time      `json:"targetDate"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
}

func (s *Service) Create(in CreateGoalInput) (*models.Goal, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !in.TargetAmount.IsPositive() {
		return nil, apperr.Validation("targetAmount must be a positive number")
	}
	g := &models.Goal{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    in.TargetDate,
		Icon:          in.Icon,
		Color:         in.Color,
		IsActive:      true,
	}
	if err := s.store.CreateGoal(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) List(includeInactive bool) ([]models.Goal, error) {
	return s.store.ListGoals(includeInactive)
}

// Contribute moves |amount| from the source account into the goal: an expense
// transaction plus balance debit on the account, a credit on the goal. The goal
// completes the moment currentAmount reaches targetAmount; nothing reopens it.
func (s *Service) Contribute(goalID string, amount decimal.Decimal, fromAccountID string) (*models.Goal, error) {
	if fromAccountID == "" {
		return nil, apperr.Validation("fromAccountId is required")
	}
	if !amount.IsPositive() {
		return nil, apperr.Validation("amount must be a positive number")
	}
	var out *models.Goal
	err := s.store.Atomic(func(tx ledger.Store) error {
		g, err := tx.GetGoal(goalID)
		if err != nil {
			return err
		}
		if _, err := tx.GetAccount(fromAccountID); err != nil {
			return err
		}
		t := &models.Transaction{
			ID:          uuid.NewString(),
			Amount:      amount.Neg(),
			Description: "Взнос в цель",
			Type:        models.TxExpense,
			Date:        s.now(),
			AccountID:   fromAccountID,
		}
		if err := tx.CreateTransaction(t); err != nil {
			return err
		}
		if err := tx.IncrementBalance(fromAccountID, amount.Neg()); err != nil {
			return err
		}
		g.CurrentAmount = g.CurrentAmount.Add(amount)
		if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
			g.IsCompleted = true
		}
		if err := tx.SaveGoal(g); err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateGoalInput is a typed patch. The completion flag is only re-evaluated on
// contribution, so lowering the target below the current amount does not
// retroactively complete the goal.
type UpdateGoalInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	TargetDate   *time.Time       `json:"targetDate"`
	Icon         *string          `json:"icon"`
	Color        *string          `json:"color"`
	IsActive     *bool            `json:"isActive"`
}

func (s *Service) Update(id string, in UpdateGoalInput) (*models.Goal, error) {
	g, err := s.store.GetGoal(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		g.Name = *in.Name
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.TargetAmount != nil {
		if !in.TargetAmount.IsPositive() {
			return nil, apperr.Validation("targetAmount must be a positive number")
		}
		g.TargetAmount = *in.TargetAmount
	}
	if in.TargetDate != nil {
		g.TargetDate = in.TargetDate
	}
	if in.Icon != nil {
		g.Icon = *in.Icon
	}
	if in.Color != nil {
		g.Color = *in.Color
	}
	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}
	if err := s.store.SaveGoal(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Close deactivates a goal. Contributed funds stay where they are.
func (s *Service) Close(id string) (*models.Goal, error) {
	inactive := false
	return s.Update(id, UpdateGoalInput{IsActive: &inactive})
}
