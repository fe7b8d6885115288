package ports

import (
	"context"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
)

// Repository persists recurring weekly availability keyed by veterinarian.
type Repository interface {
	// Replace atomically swaps the veterinarian's full weekly schedule.
	Replace(ctx context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error)
	// GetByVet returns the veterinarian's schedule; an empty slice when none is set.
	GetByVet(ctx context.Context, vetID int64) ([]domain.WeeklyAvailability, error)
}
