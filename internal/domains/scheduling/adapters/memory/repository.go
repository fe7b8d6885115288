package memory

import (
	"context"
	"sync"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory weekly availability adapter.
type Repository struct {
	mu        sync.RWMutex
	schedules map[int64][]domain.WeeklyAvailability
}

func NewRepository() *Repository {
	return &Repository{schedules: map[int64][]domain.WeeklyAvailability{}}
}

func (r *Repository) Replace(_ context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error) {
	clone := append([]domain.WeeklyAvailability{}, entries...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[vetID] = clone
	return append([]domain.WeeklyAvailability{}, clone...), nil
}

func (r *Repository) GetByVet(_ context.Context, vetID int64) ([]domain.WeeklyAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.WeeklyAvailability{}, r.schedules[vetID]...), nil
}
