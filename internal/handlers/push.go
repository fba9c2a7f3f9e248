package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/httputil"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/oxydek/fin-stat/internal/notify"
)

func (h *Handlers) PushPublicKey(w http.ResponseWriter, r *http.Request) {
	if h.Push == nil {
		httputil.WriteErr(w, apperr.Validation("push notifications are not configured"))
		return
	}
	httputil.WriteData(w, h.Push.PublicKey())
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (h *Handlers) PushSubscribe(w http.ResponseWriter, r *http.Request) {
	var in subscribeRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Endpoint == "" || in.Keys.P256dh == "" || in.Keys.Auth == "" {
		httputil.WriteErr(w, apperr.Validation("endpoint and keys are required"))
		return
	}
	err := h.Store.UpsertPushSubscription(&models.PushSubscription{
		ID:       uuid.NewString(),
		Endpoint: in.Endpoint,
		P256dh:   in.Keys.P256dh,
		Auth:     in.Keys.Auth,
	})
	if err != nil {
		httputil.WriteErr(w, err)
		return
	}
	httputil.WriteOK(w)
}

func (h *Handlers) PushTest(w http.ResponseWriter, r *http.Request) {
	h.Dispatcher.Notify(r.Context(), notify.Notification{
		Title:   "Проверка уведомлений",
		Message: "Уведомления работают",
	})
	httputil.WriteOK(w)
}
