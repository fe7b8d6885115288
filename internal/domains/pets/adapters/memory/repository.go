package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
	"github.com/vetlink/vetlink-api/internal/domains/pets/ports"
	"github.com/vetlink/vetlink-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory pet directory.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*types.PetProjection
	nextID int64
	clock  func() time.Time
}

type Option func(*Repository)

// WithClock overrides the timestamp source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		pets:   make(map[int64]*types.PetProjection),
		nextID: 1,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*types.PetProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	clone := *pet
	stored, ok := r.pets[clone.ID]
	if !ok {
		if clone.ID == 0 {
			clone.ID = r.nextID
			r.nextID++
		}
		saved := &types.PetProjection{
			Entity:   &clone,
			Metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now},
		}
		r.pets[clone.ID] = saved
		return cloneProjection(saved), nil
	}
	stored.Entity = &clone
	stored.Metadata.UpdatedAt = now
	return cloneProjection(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*types.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProjection(stored), nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID int64) ([]*types.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.PetProjection, 0)
	for _, stored := range r.pets {
		if stored.Entity.OwnerID == ownerID {
			out = append(out, cloneProjection(stored))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity.ID < out[j].Entity.ID })
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func cloneProjection(p *types.PetProjection) *types.PetProjection {
	entity := *p.Entity
	return &types.PetProjection{Entity: &entity, Metadata: p.Metadata}
}
