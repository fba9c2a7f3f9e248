package seed

import (
	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/oxydek/fin-stat/internal/models"
	"go.uber.org/zap"
)

var defaultCategories = []struct {
	Name string
	Type string
}{
	{"Зарплата", models.TxIncome},
	{"Перевод", models.TxIncome},
	{"Еда", models.TxExpense},
	{"Транспорт", models.TxExpense},
	{"Покупки", models.TxExpense},
}

// Run seeds the default categories once. Reference data only; user records are
// never seeded.
func Run(store ledger.Store) {
	count, err := store.CountCategories()
	if err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	err = store.Atomic(func(tx ledger.Store) error {
		for _, c := range defaultCategories {
			cat := models.Category{
				ID:       uuid.NewString(),
				Name:     c.Name,
				Type:     c.Type,
				IsActive: true,
			}
			if err := tx.CreateCategory(&cat); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded default categories", zap.Int("count", len(defaultCategories)))
}
