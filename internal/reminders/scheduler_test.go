package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/oxydek/fin-stat/internal/ledger/ledgertest"
	"github.com/oxydek/fin-stat/internal/models"
	"github.com/oxydek/fin-stat/internal/notify"
)

type captureChannel struct {
	sent []notify.Notification
}

func (c *captureChannel) Name() string { return "capture" }

func (c *captureChannel) Send(ctx context.Context, n notify.Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

func newScheduler(now time.Time) (*Scheduler, *ledgertest.Store, *captureChannel) {
	store := ledgertest.New()
	ch := &captureChannel{}
	s := NewScheduler(store, notify.NewDispatcher(ch), time.Minute)
	s.now = func() time.Time { return now }
	return s, store, ch
}

func addReminder(store *ledgertest.Store, id, frequency string, nextDate time.Time, active bool) {
	store.CreateReminder(&models.Reminder{
		ID:        id,
		Title:     "Оплатить аренду",
		Message:   "до конца дня",
		Type:      "payment",
		Frequency: frequency,
		NextDate:  nextDate,
		IsActive:  active,
	})
}

func TestTickFiresDueRemindersOnly(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	s, store, ch := newScheduler(now)

	addReminder(store, "due", models.FrequencyOnce, now.Add(-time.Hour), true)
	addReminder(store, "future", models.FrequencyOnce, now.Add(time.Hour), true)
	addReminder(store, "inactive", models.FrequencyOnce, now.Add(-time.Hour), false)

	s.Tick(context.Background())

	if len(ch.sent) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(ch.sent))
	}
	if ch.sent[0].Title != "Оплатить аренду" || ch.sent[0].Message != "до конца дня" {
		t.Fatalf("unexpected notification: %+v", ch.sent[0])
	}
}

func TestTickDeactivatesOneShot(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	s, store, _ := newScheduler(now)
	addReminder(store, "r1", models.FrequencyOnce, now.Add(-time.Minute), true)

	s.Tick(context.Background())

	r, _ := store.GetReminder("r1")
	if r.IsActive {
		t.Fatal("one-shot reminder must be deactivated after firing")
	}
}

func TestTickReschedulesRecurring(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	fireAt := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{models.FrequencyDaily, fireAt.AddDate(0, 0, 1)},
		{models.FrequencyWeekly, fireAt.AddDate(0, 0, 7)},
		{models.FrequencyMonthly, time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			s, store, _ := newScheduler(now)
			addReminder(store, "r1", tt.frequency, fireAt, true)

			s.Tick(context.Background())

			r, _ := store.GetReminder("r1")
			if !r.IsActive {
				t.Fatal("recurring reminder must stay active")
			}
			if !r.NextDate.Equal(tt.want) {
				t.Fatalf("nextDate = %s, want %s", r.NextDate, tt.want)
			}
		})
	}
}

func TestNextDateAdvancesFromScheduledTimeNotNow(t *testing.T) {
	// the step is applied to the reminder's own nextDate, so a missed fire does
	// not drift the schedule
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	missed := now.AddDate(0, 0, -3)
	s, store, _ := newScheduler(now)
	addReminder(store, "r1", models.FrequencyDaily, missed, true)

	s.Tick(context.Background())

	r, _ := store.GetReminder("r1")
	if !r.NextDate.Equal(missed.AddDate(0, 0, 1)) {
		t.Fatalf("nextDate = %s, want %s", r.NextDate, missed.AddDate(0, 0, 1))
	}
}

func TestNextDateMonthEndOverflow(t *testing.T) {
	// calendar month increment: Jan 31 overflows into early March, same as the
	// source behavior
	got := NextDate(time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC), models.FrequencyMonthly)
	want := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NextDate = %s, want %s", got, want)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	s, _, _ := newScheduler(now)
	s.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
