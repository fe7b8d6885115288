package ports

import (
	"context"
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// Service exposes scheduling use cases to adapters.
type Service interface {
	// SetSchedule replaces the veterinarian's recurring weekly availability.
	SetSchedule(ctx context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error)
	// GetSchedule returns the veterinarian's recurring weekly availability.
	GetSchedule(ctx context.Context, vetID int64) ([]domain.WeeklyAvailability, error)
	// BookableDates expands the schedule over a booking window of calendar days.
	BookableDates(ctx context.Context, vetID int64, windowStart time.Time, days int) ([]domain.DayAvailability, error)
	// SlotsForDate lists the bookable slots on a date, excluding slots that
	// overlap a past instant.
	SlotsForDate(ctx context.Context, vetID int64, date time.Time) ([]timeslot.Slot, error)
}
