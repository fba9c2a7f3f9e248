package reminders

import (
	"context"
	"time"

	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/oxydek/fin-stat/internal/notify"
	"go.uber.org/zap"
)

// Scheduler polls for due reminders, fires notifications and either advances
// the next fire time (recurring) or deactivates the reminder (one-shot).
type Scheduler struct {
	store      ledger.Store
	dispatcher *notify.Dispatcher
	interval   time.Duration
	now        func() time.Time
}

func NewScheduler(store ledger.Store, dispatcher *notify.Dispatcher, interval time.Duration) *Scheduler {
	return &Scheduler{store: store, dispatcher: dispatcher, interval: interval, now: time.Now}
}

// Run ticks until the context is cancelled. The first check happens right away.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick processes every reminder currently due. Errors on one reminder do not
// stop the rest.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()
	due, err := s.store.DueReminders(now)
	if err != nil {
		logger.Log.Error("failed to query due reminders", zap.Error(err))
		return
	}
	for i := range due {
		r := &due[i]
		s.dispatcher.Notify(ctx, notify.Notification{Title: r.Title, Message: r.Message})

		if r.Frequency == models.FrequencyOnce {
			r.IsActive = false
		} else {
			r.NextDate = NextDate(r.NextDate, r.Frequency)
		}
		if err := s.store.SaveReminder(r); err != nil {
			logger.Log.Error("failed to reschedule reminder",
				zap.String("id", r.ID), zap.Error(err))
		}
	}
}

// NextDate advances a fire time by one frequency step. Months are calendar
// aware: Jan 31 + monthly lands on the date AddDate produces.
func NextDate(current time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return current.AddDate(0, 1, 0)
	default:
		return current
	}
}
