// Package ledgertest provides an in-memory ledger.Store for service tests.
package ledgertest

import (
	"sort"
	"time"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

type Store struct {
	Accounts      []*models.Account
	Transactions  []*models.Transaction
	Goals         []*models.Goal
	Reminders     []*models.Reminder
	Categories    []*models.Category
	Settings      *models.Settings
	Subscriptions []*models.PushSubscription
}

var _ ledger.Store = (*Store)(nil)

func New() *Store { return &Store{} }

// Atomic runs fn against the same store. Rollback semantics are not modeled;
// tests assert on the happy path or fail before any write.
func (s *Store) Atomic(fn func(tx ledger.Store) error) error {
	return fn(s)
}

func (s *Store) CreateAccount(a *models.Account) error {
	cp := *a
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.Accounts = append(s.Accounts, &cp)
	return nil
}

func (s *Store) GetAccount(id string) (*models.Account, error) {
	for _, a := range s.Accounts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("account not found")
}

func (s *Store) ListAccounts(includeInactive bool) ([]models.Account, error) {
	var out []models.Account
	for i := len(s.Accounts) - 1; i >= 0; i-- {
		a := s.Accounts[i]
		if includeInactive || a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *Store) SaveAccount(a *models.Account) error {
	for i, old := range s.Accounts {
		if old.ID == a.ID {
			cp := *a
			s.Accounts[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("account not found")
}

func (s *Store) IncrementBalance(id string, delta decimal.Decimal) error {
	for _, a := range s.Accounts {
		if a.ID == id {
			a.Balance = a.Balance.Add(delta)
			return nil
		}
	}
	return apperr.NotFound("account not found")
}

func (s *Store) FindAccountByExternalID(externalID string) (*models.Account, error) {
	for _, a := range s.Accounts {
		if a.ExternalID == externalID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateTransaction(t *models.Transaction) error {
	cp := *t
	s.Transactions = append(s.Transactions, &cp)
	return nil
}

func (s *Store) ListTransactions(accountID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range s.Transactions {
		if accountID == "" || t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) CreateGoal(g *models.Goal) error {
	cp := *g
	s.Goals = append(s.Goals, &cp)
	return nil
}

func (s *Store) GetGoal(id string) (*models.Goal, error) {
	for _, g := range s.Goals {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("goal not found")
}

func (s *Store) ListGoals(includeInactive bool) ([]models.Goal, error) {
	var out []models.Goal
	for i := len(s.Goals) - 1; i >= 0; i-- {
		g := s.Goals[i]
		if includeInactive || g.IsActive {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *Store) SaveGoal(g *models.Goal) error {
	for i, old := range s.Goals {
		if old.ID == g.ID {
			cp := *g
			s.Goals[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("goal not found")
}

func (s *Store) CreateReminder(r *models.Reminder) error {
	cp := *r
	s.Reminders = append(s.Reminders, &cp)
	return nil
}

func (s *Store) GetReminder(id string) (*models.Reminder, error) {
	for _, r := range s.Reminders {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("reminder not found")
}

func (s *Store) ListReminders() ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range s.Reminders {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDate.Before(out[j].NextDate) })
	return out, nil
}

func (s *Store) DueReminders(now time.Time) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range s.Reminders {
		if r.IsActive && !r.NextDate.After(now) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Store) SaveReminder(r *models.Reminder) error {
	for i, old := range s.Reminders {
		if old.ID == r.ID {
			cp := *r
			s.Reminders[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("reminder not found")
}

func (s *Store) DeleteReminder(id string) error {
	for i, r := range s.Reminders {
		if r.ID == id {
			s.Reminders = append(s.Reminders[:i], s.Reminders[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("reminder not found")
}

func (s *Store) CreateCategory(c *models.Category) error {
	cp := *c
	s.Categories = append(s.Categories, &cp)
	return nil
}

func (s *Store) ListCategories() ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.Categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *Store) CountCategories() (int64, error) {
	return int64(len(s.Categories)), nil
}

func (s *Store) GetSettings() (*models.Settings, error) {
	if s.Settings == nil {
		return &models.Settings{ID: models.SettingsID}, nil
	}
	cp := *s.Settings
	return &cp, nil
}

func (s *Store) SaveSettings(settings *models.Settings) error {
	cp := *settings
	cp.ID = models.SettingsID
	s.Settings = &cp
	return nil
}

func (s *Store) UpsertPushSubscription(sub *models.PushSubscription) error {
	for i, old := range s.Subscriptions {
		if old.Endpoint == sub.Endpoint {
			cp := *sub
			s.Subscriptions[i] = &cp
			return nil
		}
	}
	cp := *sub
	s.Subscriptions = append(s.Subscriptions, &cp)
	return nil
}

func (s *Store) ListPushSubscriptions() ([]models.PushSubscription, error) {
	var out []models.PushSubscription
	for _, sub := range s.Subscriptions {
		out = append(out, *sub)
	}
	return out, nil
}

func (s *Store) DeletePushSubscriptionByEndpoint(endpoint string) error {
	for i, sub := range s.Subscriptions {
		if sub.Endpoint == endpoint {
			s.Subscriptions = append(s.Subscriptions[:i], s.Subscriptions[i+1:]...)
			return nil
		}
	}
	return nil
}
