package interest

import (
	"time"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
)

const daysPerYear = 365

var hundred = decimal.NewFromInt(100)

// Engine tracks per-account rate buckets: principal amounts that entered a
// deposit while a specific annual rate was in effect. Interest is simple,
// Actual/365, truncated to whole days per bucket.
type Engine struct {
	store ledger.Store
	now   func() time.Time
}

func NewEngine(store ledger.Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// SetRate appends a fresh zero-principal bucket for the new rate and makes it
// the account's current rate. Re-setting the same rate still appends; buckets
// are only merged on deposit.
func (e *Engine) SetRate(accountID string, rate decimal.Decimal) (*models.Account, error) {
	if rate.IsNegative() {
		return nil, apperr.Validation("rate must not be negative")
	}
	var out *models.Account
	err := e.store.Atomic(func(tx ledger.Store) error {
		a, err := tx.GetAccount(accountID)
		if err != nil {
			return err
		}
		now := e.now()
		a.RateBuckets = append(a.RateBuckets, models.RateBucket{
			Rate:      rate,
			Principal: decimal.Zero,
			StartDate: now,
			LastSync:  &now,
		})
		a.InterestRate = &rate
		if err := tx.SaveAccount(a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// OnDeposit allocates freshly deposited principal to the bucket for the current
// rate. No-op for accounts without a rate set.
func (e *Engine) OnDeposit(accountID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be positive")
	}
	return e.store.Atomic(func(tx ledger.Store) error {
		a, err := tx.GetAccount(accountID)
		if err != nil {
			return err
		}
		if a.InterestRate == nil {
			return nil
		}
		a.RateBuckets = allocate(a.RateBuckets, *a.InterestRate, amount, e.now())
		return tx.SaveAccount(a)
	})
}

// OnWithdraw deallocates principal LIFO: recently added funds leave first. Each
// bucket is clamped to what it holds; emptied buckets are dropped except the
// last one, which stays as the current-rate placeholder.
func (e *Engine) OnWithdraw(accountID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be positive")
	}
	return e.store.Atomic(func(tx ledger.Store) error {
		a, err := tx.GetAccount(accountID)
		if err != nil {
			return err
		}
		if len(a.RateBuckets) == 0 {
			return nil
		}
		a.RateBuckets = deallocate(a.RateBuckets, amount)
		return tx.SaveAccount(a)
	})
}

// Accrued returns interest owed as of now, floored to a whole currency unit.
func (e *Engine) Accrued(accountID string) (decimal.Decimal, error) {
	a, err := e.store.GetAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return accrued(a.RateBuckets, e.now()), nil
}

// Apply credits accrued interest as an income transaction and restarts accrual
// by syncing every bucket to now. Principal is untouched: interest does not
// compound unless deposited back explicitly.
func (e *Engine) Apply(accountID string) (decimal.Decimal, error) {
	var credited decimal.Decimal
	err := e.store.Atomic(func(tx ledger.Store) error {
		a, err := tx.GetAccount(accountID)
		if err != nil {
			return err
		}
		now := e.now()
		total := accrued(a.RateBuckets, now)
		credited = total
		if !total.IsPositive() {
			return nil
		}
		t := &models.Transaction{
			ID:          uuid.NewString(),
			Amount:      total,
			Description: "Начисленные проценты",
			Type:        models.TxIncome,
			Date:        now,
			AccountID:   a.ID,
		}
		if err := tx.CreateTransaction(t); err != nil {
			return err
		}
		// One full-row save carries both the credit and the bucket sync;
		// a separate balance increment would be overwritten by it.
		a.Balance = a.Balance.Add(total)
		for i := range a.RateBuckets {
			sync := now
			a.RateBuckets[i].LastSync = &sync
		}
		return tx.SaveAccount(a)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return credited, nil
}

func allocate(buckets models.RateBuckets, rate, amount decimal.Decimal, now time.Time) models.RateBuckets {
	if len(buckets) == 0 || !buckets[len(buckets)-1].Rate.Equal(rate) {
		buckets = append(buckets, models.RateBucket{
			Rate:      rate,
			Principal: decimal.Zero,
			StartDate: now,
			LastSync:  &now,
		})
	}
	last := len(buckets) - 1
	buckets[last].Principal = buckets[last].Principal.Add(amount)
	return buckets
}

func deallocate(buckets models.RateBuckets, amount decimal.Decimal) models.RateBuckets {
	rest := amount
	for i := len(buckets) - 1; i >= 0 && rest.IsPositive(); i-- {
		take := decimal.Min(buckets[i].Principal, rest)
		buckets[i].Principal = buckets[i].Principal.Sub(take)
		rest = rest.Sub(take)
	}
	kept := buckets[:0:0]
	for i, b := range buckets {
		if b.Principal.IsPositive() || i == len(buckets)-1 {
			kept = append(kept, b)
		}
	}
	return kept
}

func accrued(buckets models.RateBuckets, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		from := b.StartDate
		if b.LastSync != nil {
			from = *b.LastSync
		}
		days := wholeDays(from, now)
		if days > 0 && b.Principal.IsPositive() && b.Rate.IsPositive() {
			part := b.Principal.
				Mul(b.Rate).Div(hundred).
				Mul(decimal.NewFromInt(days)).Div(decimal.NewFromInt(daysPerYear))
			total = total.Add(part)
		}
	}
	return total.Floor()
}

func wholeDays(from, to time.Time) int64 {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int64(d / (24 * time.Hour))
}
