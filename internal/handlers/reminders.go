package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/oxydek/fin-stat/internal/reminders"
)

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reminders.List()
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, out)
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var in reminders.CreateReminderInput
	if !decodeBody(w, r, &in) {
		return
	}
	rem, err := h.Reminders.Create(in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, rem)
}

func (h *Handlers) GetReminder(w http.ResponseWriter, r *http.Request) {
	rem, err := h.Store.GetReminder(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, rem)
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var in reminders.UpdateReminderInput
	if !decodeBody(w, r, &in) {
		return
	}
	rem, err := h.Reminders.Update(chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteData(w, rem)
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.Reminders.Delete(chi.URLParam(r, "id")); err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteOK(w)
}
