package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oxydek/fin-stat/internal/broker"
	"github.com/oxydek/fin-stat/internal/goals"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/oxydek/fin-stat/internal/interest"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/oxydek/fin-stat/internal/notify"
	"github.com/oxydek/fin-stat/internal/reminders"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handlers carries every service the API needs. Dependencies are injected here
// instead of being reached through package globals.
type Handlers struct {
	Store      ledger.Store
	Ledger     *ledger.Service
	Interest   *interest.Engine
	Goals      *goals.Service
	Reminders  *reminders.Service
	Broker     *broker.Client
	Syncer     *broker.Syncer
	Dispatcher *notify.Dispatcher
	Push       *notify.WebPush
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// Accounts

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	accounts, err := h.Ledger.ListAccounts(includeInactive)
	if err != nil {
		logger.Log.Error("failed to fetch accounts", zap.Error(err))
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, accounts)
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateAccountInput
	if !decodeBody(w, r, &in) {
		return
	}
	a, err := h.Ledger.CreateAccount(in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, a)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var in ledger.UpdateAccountInput
	if !decodeBody(w, r, &in) {
		return
	}
	a, err := h.Ledger.UpdateAccount(chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, a)
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit records an income transaction and, for deposit accounts, allocates
// the amount into the current rate bucket.
func (h *Handlers) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in amountRequest
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.Ledger.RecordTransaction(ledger.RecordTransactionInput{
		AccountID:   id,
		Amount:      in.Amount,
		Type:        models.TxIncome,
		Description: "Пополнение",
	})
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	if h.isDeposit(id) {
		if err := h.Interest.OnDeposit(id, in.Amount); err != nil {
			logger.Log.Error("rate bucket allocation failed", zap.String("account", id), zap.Error(err))
		}
	}
	httputil.WriteData(w, t)
}

func (h *Handlers) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in amountRequest
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.Ledger.RecordTransaction(ledger.RecordTransactionInput{
		AccountID:   id,
		Amount:      in.Amount,
		Type:        models.TxExpense,
		Description: "Списание",
	})
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	if h.isDeposit(id) {
		if err := h.Interest.OnWithdraw(id, in.Amount); err != nil {
			logger.Log.Error("rate bucket deallocation failed", zap.String("account", id), zap.Error(err))
		}
	}
	httputil.WriteData(w, t)
}

func (h *Handlers) isDeposit(accountID string) bool {
	a, err := h.Ledger.GetAccount(accountID)
	return err == nil && a.Type == models.AccountTypeDeposit
}

// Interest

type rateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

func (h *Handlers) SetRate(w http.ResponseWriter, r *http.Request) {
	var in rateRequest
	if !decodeBody(w, r, &in) {
		return
	}
	a, err := h.Interest.SetRate(chi.URLParam(r, "id"), in.Rate)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, a)
}

func (h *Handlers) AccruedInterest(w http.ResponseWriter, r *http.Request) {
	amount, err := h.Interest.Accrued(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, map[string]decimal.Decimal{"accrued": amount})
}

func (h *Handlers) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	amount, err := h.Interest.Apply(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, map[string]decimal.Decimal{"applied": amount})
}

// Transactions

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Ledger.ListTransactions(r.URL.Query().Get("accountId"))
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, txs)
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in ledger.RecordTransactionInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.Ledger.RecordTransaction(in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, t)
}

// Categories

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Store.ListCategories()
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, cats)
}
