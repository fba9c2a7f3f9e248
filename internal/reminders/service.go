package reminders

import (
	"time"

	"github.com/google/uuid"
	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/models"
)

type Service struct {
	store ledger.Store
}

func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

type CreateReminderInput struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Frequency string    `json:"frequency"`
	NextDate  time.Time `json:"nextDate"`
	GoalID    *string   `json:"goalId"`
}

func validFrequency(f string) bool {
	switch f {
	case models.FrequencyOnce, models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
		return true
	}
	return false
}

func (s *Service) Create(in CreateReminderInput) (*models.Reminder, error) {
	if in.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if !validFrequency(in.Frequency) {
		return nil, apperr.Validation("frequency must be once, daily, weekly or monthly")
	}
	if in.NextDate.IsZero() {
		return nil, apperr.Validation("nextDate is required")
	}
	if in.Type == "" {
		in.Type = "custom"
	}
	r := &models.Reminder{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Frequency: in.Frequency,
		NextDate:  in.NextDate,
		IsActive:  true,
		GoalID:    in.GoalID,
	}
	if err := s.store.CreateReminder(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) List() ([]models.Reminder, error) {
	return s.store.ListReminders()
}

type UpdateReminderInput struct {
	Title    *string    `json:"title"`
	Message  *string    `json:"message"`
	NextDate *time.Time `json:"nextDate"`
	IsActive *bool      `json:"isActive"`
}

func (s *Service) Update(id string, in UpdateReminderInput) (*models.Reminder, error) {
	r, err := s.store.GetReminder(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		r.Title = *in.Title
	}
	if in.Message != nil {
		r.Message = *in.Message
	}
	if in.NextDate != nil {
		r.NextDate = *in.NextDate
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if err := s.store.SaveReminder(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(id string) error {
	return s.store.DeleteReminder(id)
}
