package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

// Repository is an in-memory appointment store used in tests and when no
// database is configured. The status compare-and-swap happens under the
// write lock, mirroring the guarded UPDATE of the postgres adapter.
type Repository struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]*domain.Appointment
}

var _ ports.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{appointments: make(map[uuid.UUID]*domain.Appointment)}
}

func (r *Repository) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appointments[appointment.ID] = appointment.Clone()
	return appointment.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.appointments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return stored.Clone(), nil
}

func (r *Repository) Update(_ context.Context, appointment *domain.Appointment, expected domain.Status) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[appointment.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if stored.Status != expected {
		return nil, ports.ErrConcurrencyConflict
	}

	r.appointments[appointment.ID] = appointment.Clone()
	return appointment.Clone(), nil
}

func (r *Repository) ListByVet(_ context.Context, vetID int64) ([]*domain.Appointment, error) {
	return r.list(func(a *domain.Appointment) bool { return a.VetID == vetID }), nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Appointment, error) {
	return r.list(func(a *domain.Appointment) bool { return a.OwnerID == ownerID }), nil
}

func (r *Repository) ListConfirmedEndedBefore(_ context.Context, cutoff time.Time) ([]*domain.Appointment, error) {
	return r.list(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusConfirmed &&
			a.Confirmation != nil &&
			a.Confirmation.Slot.End.Before(cutoff)
	}), nil
}

func (r *Repository) list(match func(*domain.Appointment) bool) []*domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Appointment, 0)
	for _, stored := range r.appointments {
		if match(stored) {
			out = append(out, stored.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
