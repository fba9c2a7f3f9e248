package ledger

import (
	"time"

	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

// Store is the durable keyed storage behind every engine. Methods are typed per
// entity; Atomic groups several writes into one unit so a transaction record and
// its balance effect can never desynchronize.
type Store interface {
	Atomic(fn func(tx Store) error) error

	CreateAccount(a *models.Account) error
	GetAccount(id string) (*models.Account, error)
	ListAccounts(includeInactive bool) ([]models.Account, error)
	SaveAccount(a *models.Account) error
	IncrementBalance(id string, delta decimal.Decimal) error
	FindAccountByExternalID(externalID string) (*models.Account, error)

	CreateTransaction(t *models.Transaction) error
	ListTransactions(accountID string) ([]models.Transaction, error)

	CreateGoal(g *models.Goal) error
	GetGoal(id string) (*models.Goal, error)
	ListGoals(includeInactive bool) ([]models.Goal, error)
	SaveGoal(g *models.Goal) error

	CreateReminder(r *models.Reminder) error
	GetReminder(id string) (*models.Reminder, error)
	ListReminders() ([]models.Reminder, error)
	DueReminders(now time.Time) ([]models.Reminder, error)
	SaveReminder(r *models.Reminder) error
	DeleteReminder(id string) error

	CreateCategory(c *models.Category) error
	ListCategories() ([]models.Category, error)
	CountCategories() (int64, error)

	GetSettings() (*models.Settings, error)
	SaveSettings(s *models.Settings) error

	UpsertPushSubscription(s *models.PushSubscription) error
	ListPushSubscriptions() ([]models.PushSubscription, error)
	DeletePushSubscriptionByEndpoint(endpoint string) error
}
