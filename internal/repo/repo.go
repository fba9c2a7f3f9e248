package repo

import (
	"errors"
	"time"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo exposes typed per-entity persistence methods. Every method has a fixed
// signature so invariants cannot be bypassed with arbitrary-field patches.
type Repo struct {
	db *gorm.DB
}

var _ ledger.Store = (*Repo)(nil)

func New(db *gorm.DB) *Repo { return &Repo{db: db} }

// Atomic runs fn inside a single database transaction.
func (r *Repo) Atomic(fn func(tx ledger.Store) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{db: tx})
	})
}

func wrap(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Persistence("store operation failed", err)
}

// Accounts

func (r *Repo) CreateAccount(a *models.Account) error {
	return wrap(r.db.Create(a).Error, "")
}

func (r *Repo) GetAccount(id string) (*models.Account, error) {
	var a models.Account
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "account not found")
	}
	return &a, nil
}

func (r *Repo) ListAccounts(includeInactive bool) ([]models.Account, error) {
	q := r.db.Order("created_at desc")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Account
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

func (r *Repo) SaveAccount(a *models.Account) error {
	return wrap(r.db.Save(a).Error, "")
}

// IncrementBalance adjusts the materialized balance aggregate by delta.
func (r *Repo) IncrementBalance(id string, delta decimal.Decimal) error {
	res := r.db.Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return wrap(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account not found")
	}
	return nil
}

// FindAccountByExternalID resolves a mirrored account by its stable external key.
func (r *Repo) FindAccountByExternalID(externalID string) (*models.Account, error) {
	var a models.Account
	err := r.db.First(&a, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "")
	}
	return &a, nil
}

// Transactions

func (r *Repo) CreateTransaction(t *models.Transaction) error {
	return wrap(r.db.Create(t).Error, "")
}

func (r *Repo) ListTransactions(accountID string) ([]models.Transaction, error) {
	q := r.db.Order("date desc")
	if accountID != "" {
		q = q.Where("account_id = ?", accountID)
	}
	var out []models.Transaction
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

// Goals

func (r *Repo) CreateGoal(g *models.Goal) error {
	return wrap(r.db.Create(g).Error, "")
}

func (r *Repo) GetGoal(id string) (*models.Goal, error) {
	var g models.Goal
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "goal not found")
	}
	return &g, nil
}

func (r *Repo) ListGoals(includeInactive bool) ([]models.Goal, error) {
	q := r.db.Order("created_at desc")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Goal
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

func (r *Repo) SaveGoal(g *models.Goal) error {
	return wrap(r.db.Save(g).Error, "")
}

// Reminders

func (r *Repo) CreateReminder(rem *models.Reminder) error {
	return wrap(r.db.Create(rem).Error, "")
}

func (r *Repo) GetReminder(id string) (*models.Reminder, error) {
	var rem models.Reminder
	if err := r.db.First(&rem, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "reminder not found")
	}
	return &rem, nil
}

func (r *Repo) ListReminders() ([]models.Reminder, error) {
	var out []models.Reminder
	if err := r.db.Order("next_date asc").Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

// DueReminders returns active reminders whose next fire time has passed.
func (r *Repo) DueReminders(now time.Time) ([]models.Reminder, error) {
	var out []models.Reminder
	err := r.db.Where("is_active = ? AND next_date <= ?", true, now).Find(&out).Error
	if err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

func (r *Repo) SaveReminder(rem *models.Reminder) error {
	return wrap(r.db.Save(rem).Error, "")
}

func (r *Repo) DeleteReminder(id string) error {
	res := r.db.Delete(&models.Reminder{}, "id = ?", id)
	if res.Error != nil {
		return wrap(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("reminder not found")
	}
	return nil
}

// Categories

func (r *Repo) CreateCategory(c *models.Category) error {
	return wrap(r.db.Create(c).Error, "")
}

func (r *Repo) ListCategories() ([]models.Category, error) {
	var out []models.Category
	if err := r.db.Where("is_active = ?", true).Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

func (r *Repo) CountCategories() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Category{}).Count(&n).Error; err != nil {
		return 0, wrap(err, "")
	}
	return n, nil
}

// Settings

func (r *Repo) GetSettings() (*models.Settings, error) {
	var s models.Settings
	err := r.db.First(&s, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Settings{ID: models.SettingsID}, nil
	}
	if err != nil {
		return nil, wrap(err, "")
	}
	return &s, nil
}

func (r *Repo) SaveSettings(s *models.Settings) error {
	s.ID = models.SettingsID
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(s).Error
	return wrap(err, "")
}

// Push subscriptions

func (r *Repo) UpsertPushSubscription(s *models.PushSubscription) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(s).Error
	return wrap(err, "")
}

func (r *Repo) ListPushSubscriptions() ([]models.PushSubscription, error) {
	var out []models.PushSubscription
	if err := r.db.Find(&out).Error; err != nil {
		return nil, wrap(err, "")
	}
	return out, nil
}

func (r *Repo) DeletePushSubscriptionByEndpoint(endpoint string) error {
	return wrap(r.db.Delete(&models.PushSubscription{}, "endpoint = ?", endpoint).Error, "")
}
