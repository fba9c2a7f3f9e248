package notify

import (
	"context"

	"github.com/oxydek/fin-stat/internal/logger"
	"go.uber.org/zap"
)

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// Channel delivers one notification to one medium. Delivery is best effort;
// channel failures must not disturb the caller.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Notify fans the notification out to every configured channel. Errors are
// logged and swallowed.
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	for _, ch := range d.channels {
		if err := ch.Send(ctx, n); err != nil {
			logger.Log.Warn("notification delivery failed",
				zap.String("channel", ch.Name()),
				zap.String("title", n.Title),
				zap.Error(err))
		}
	}
}
