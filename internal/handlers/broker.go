package handlers

import (
	"net/http"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/oxydek/fin-stat/internal/models"
)

// Token management: the brokerage credential lives in the singleton Settings
// record, never in config.

func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings()
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, settings.BrokerToken)
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *Handlers) SetToken(w http.ResponseWriter, r *http.Request) {
	var in tokenRequest
	if !decodeBody(w, r, &in) {
		return
	}
	err := h.Store.SaveSettings(&models.Settings{BrokerToken: in.Token})
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteOK(w)
}

// Broker passthrough

func (h *Handlers) brokerToken(w http.ResponseWriter) (string, bool) {
	token, err := h.Syncer.Token()
	if err != nil {
		httputil.WriteErr(w, err)
		return "", false
	}
	if token == "" {
		httputil.WriteErr(w, apperr.Validation("brokerage token is not configured"))
		return "", false
	}
	return token, true
}

func (h *Handlers) BrokerAccounts(w http.ResponseWriter, r *http.Request) {
	token, ok := h.brokerToken(w)
	if !ok {
		return
	}
	accounts, err := h.Broker.GetAccounts(r.Context(), token)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, accounts)
}

func (h *Handlers) BrokerPositions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		httputil.WriteErr(w, apperr.Validation("accountId is required"))
		return
	}
	token, ok := h.brokerToken(w)
	if !ok {
		return
	}
	positions, err := h.Broker.GetPositions(r.Context(), token, accountID)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, positions)
}

func (h *Handlers) BrokerPortfolio(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		httputil.WriteErr(w, apperr.Validation("accountId is required"))
		return
	}
	token, ok := h.brokerToken(w)
	if !ok {
		return
	}
	portfolio, err := h.Broker.GetPortfolio(r.Context(), token, accountID)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, portfolio)
}

// SyncBroker triggers a mirror sync outside the timer.
func (h *Handlers) SyncBroker(w http.ResponseWriter, r *http.Request) {
	res, err := h.Syncer.Sync(r.Context())
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, res)
}
