package notify

import (
	"context"
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"go.uber.org/zap"
)

// WebPush sends browser push messages to every stored subscription using VAPID
// keys. Endpoints that answer 404 or 410 are gone and get unsubscribed locally.
type WebPush struct {
	store      ledger.Store
	publicKey  string
	privateKey string
	subscriber string
}

func NewWebPush(store ledger.Store, publicKey, privateKey, subscriber string) *WebPush {
	return &WebPush{store: store, publicKey: publicKey, privateKey: privateKey, subscriber: subscriber}
}

func (w *WebPush) Name() string { return "webpush" }

func (w *WebPush) PublicKey() string { return w.publicKey }

func (w *WebPush) Send(ctx context.Context, n Notification) error {
	subs, err := w.store.ListPushSubscriptions()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		resp, err := webpush.SendNotification(payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
		}, &webpush.Options{
			Subscriber:      w.subscriber,
			VAPIDPublicKey:  w.publicKey,
			VAPIDPrivateKey: w.privateKey,
			TTL:             60,
		})
		if err != nil {
			logger.Log.Warn("push send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
			continue
		}
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			if err := w.store.DeletePushSubscriptionByEndpoint(sub.Endpoint); err != nil {
				logger.Log.Warn("failed to drop stale subscription", zap.Error(err))
			}
		}
		resp.Body.Close()
	}
	return nil
}
