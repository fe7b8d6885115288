package application

import (
	"context"
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// Service orchestrates the scheduling bounded context use cases.
type Service struct {
	repo  ports.Repository
	clock func() time.Time
}

// Option configures the scheduling service.
type Option func(*Service)

// WithClock overrides the reference-instant source, letting tests supply a
// fixed instant instead of the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService wires the scheduling service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetSchedule validates and replaces the veterinarian's weekly availability.
func (s *Service) SetSchedule(ctx context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error) {
	validated := make([]domain.WeeklyAvailability, 0, len(entries))
	for _, entry := range entries {
		window, err := domain.NewWeeklyAvailability(entry.Day, entry.Start, entry.End)
		if err != nil {
			return nil, mapError(err)
		}
		validated = append(validated, window)
	}
	saved, err := s.repo.Replace(ctx, vetID, validated)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetSchedule loads the veterinarian's weekly availability.
func (s *Service) GetSchedule(ctx context.Context, vetID int64) ([]domain.WeeklyAvailability, error) {
	entries, err := s.repo.GetByVet(ctx, vetID)
	if err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

// BookableDates expands the veterinarian's schedule over a booking window.
func (s *Service) BookableDates(ctx context.Context, vetID int64, windowStart time.Time, days int) ([]domain.DayAvailability, error) {
	entries, err := s.repo.GetByVet(ctx, vetID)
	if err != nil {
		return nil, mapError(err)
	}
	if days <= 0 {
		days = domain.DefaultWindowDays
	}
	return domain.BookableDates(entries, windowStart, days, s.clock()), nil
}

// SlotsForDate lists the bookable slots on a date, dropping slots already started.
func (s *Service) SlotsForDate(ctx context.Context, vetID int64, date time.Time) ([]timeslot.Slot, error) {
	entries, err := s.repo.GetByVet(ctx, vetID)
	if err != nil {
		return nil, mapError(err)
	}
	now := s.clock()
	slots := make([]timeslot.Slot, 0)
	for slot := range domain.Slots(entries, date) {
		if slot.Start.Before(now) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

var _ ports.Service = (*Service)(nil)
