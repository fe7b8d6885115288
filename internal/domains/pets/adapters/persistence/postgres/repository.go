package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vetlink/vetlink-api/internal/domains/pets/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/pets/domain"
	"github.com/vetlink/vetlink-api/internal/domains/pets/ports"
	"github.com/vetlink/vetlink-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the pet directory in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&petRecord{})
	}
	return repo
}

type petRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID   int64     `gorm:"column:owner_id;index:idx_pets_owner"`
	Name      string    `gorm:"column:name"`
	Species   string    `gorm:"column:species"`
	Breed     string    `gorm:"column:breed"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Save inserts or updates a directory entry.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	clone := *pet
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a directory entry by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// ListByOwner returns the owner's pets ordered by ID.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*types.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	pets := make([]*types.PetProjection, 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toProjection())
	}
	return pets, nil
}

// Delete removes a directory entry.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:      pet.ID,
		OwnerID: pet.OwnerID,
		Name:    pet.Name,
		Species: pet.Species,
		Breed:   pet.Breed,
	}
}

func (r petRecord) toProjection() *types.PetProjection {
	return &types.PetProjection{
		Entity: &domain.Pet{
			ID:      r.ID,
			OwnerID: r.OwnerID,
			Name:    r.Name,
			Species: r.Species,
			Breed:   r.Breed,
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
