package broker

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const externalSource = "tinkoff"

type SyncStatus string

const (
	StatusOK           SyncStatus = "ok"
	StatusNoCredential SyncStatus = "no_credential"
)

type SyncResult struct {
	Status  SyncStatus `json:"status"`
	Synced  int        `json:"synced"`
	Skipped int        `json:"skipped"`
}

// Syncer mirrors brokerage cash balances into read-only local accounts keyed by
// a stable external id.
type Syncer struct {
	store    ledger.Store
	client   *Client
	interval time.Duration
}

func NewSyncer(store ledger.Store, client *Client, interval time.Duration) *Syncer {
	return &Syncer{store: store, client: client, interval: interval}
}

// Run syncs on a fixed interval until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil {
				logger.Log.Warn("broker sync failed", zap.Error(err))
			}
		}
	}
}

// Token returns the stored brokerage credential, empty when unset.
func (s *Syncer) Token() (string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return "", err
	}
	return settings.BrokerToken, nil
}

// Sync lists brokerage accounts and upserts a mirror account per each with its
// RUB cash balance. A missing credential short-circuits with NoCredential; a
// per-account fetch failure skips just that account.
func (s *Syncer) Sync(ctx context.Context) (SyncResult, error) {
	token, err := s.Token()
	if err != nil {
		return SyncResult{}, err
	}
	if token == "" {
		return SyncResult{Status: StatusNoCredential}, nil
	}

	accounts, err := s.client.GetAccounts(ctx, token)
	if err != nil {
		return SyncResult{}, err
	}

	res := SyncResult{Status: StatusOK}
	for _, acc := range accounts {
		positions, err := s.client.GetPositions(ctx, token, acc.ID)
		if err != nil {
			logger.Log.Warn("skipping broker account",
				zap.String("account", acc.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		cash := SumRUBCash(positions.Money)
		if err := s.upsertMirror(acc, cash); err != nil {
			logger.Log.Warn("failed to upsert mirror account",
				zap.String("account", acc.ID), zap.Error(err))
			res.Skipped++
			continue
		}
		res.Synced++
	}
	return res, nil
}

// SumRUBCash totals the RUB-denominated cash positions.
func SumRUBCash(money []MoneyValue) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range money {
		if strings.EqualFold(m.Currency, "RUB") {
			sum = sum.Add(m.Decimal())
		}
	}
	return sum
}

func (s *Syncer) upsertMirror(acc BrokerAccount, cash decimal.Decimal) error {
	externalID := externalSource + ":" + acc.ID
	balance := cash.Round(0)

	existing, err := s.store.FindAccountByExternalID(externalID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Balance = balance
		if acc.Name != "" {
			existing.Name = acc.Name
		}
		return s.store.SaveAccount(existing)
	}

	name := acc.Name
	if name == "" {
		name = "Брокерский счет"
	}
	return s.store.CreateAccount(&models.Account{
		ID:             uuid.NewString(),
		Name:           name,
		Type:           models.AccountTypeBroker,
		Balance:        balance,
		Currency:       "RUB",
		IsActive:       true,
		ExternalSource: externalSource,
		ExternalID:     externalID,
	})
}
