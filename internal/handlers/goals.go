package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oxydek/fin-stat/internal/goals"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/shopspring/decimal"
)

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	out, err := h.Goals.List(includeInactive)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, out)
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var in goals.CreateGoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	g, err := h.Goals.Create(in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, g)
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var in goals.UpdateGoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	g, err := h.Goals.Update(chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, g)
}

type contributionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"fromAccountId"`
}

func (h *Handlers) Contribute(w http.ResponseWriter, r *http.Request) {
	var in contributionRequest
	if !decodeBody(w, r, &in) {
		return
	}
	g, err := h.Goals.Contribute(chi.URLParam(r, "id"), in.Amount, in.FromAccountID)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, g)
}
