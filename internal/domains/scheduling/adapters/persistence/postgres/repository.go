package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists weekly availability in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&availabilityRecord{})
	}
	return repo
}

// availabilityRecord maps one recurring weekly window to a relational row.
type availabilityRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	VetID       int64     `gorm:"column:vet_id;index:idx_weekly_availability_vet"`
	Day         int       `gorm:"column:day"`
	StartMinute int       `gorm:"column:start_minute"`
	EndMinute   int       `gorm:"column:end_minute"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (availabilityRecord) TableName() string { return "weekly_availability" }

// Replace swaps the veterinarian's schedule inside a single transaction.
func (r *Repository) Replace(ctx context.Context, vetID int64, entries []domain.WeeklyAvailability) ([]domain.WeeklyAvailability, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vet_id = ?", vetID).Delete(&availabilityRecord{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		records := make([]availabilityRecord, 0, len(entries))
		for _, entry := range entries {
			records = append(records, toRecord(vetID, entry))
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByVet(ctx, vetID)
}

// GetByVet loads the veterinarian's schedule ordered by weekday then start.
func (r *Repository) GetByVet(ctx context.Context, vetID int64) ([]domain.WeeklyAvailability, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []availabilityRecord
	if err := r.db.WithContext(ctx).
		Where("vet_id = ?", vetID).
		Order("day, start_minute").
		Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.WeeklyAvailability, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.toDomain())
	}
	return entries, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres availability repository not configured")
	}
	return nil
}

func toRecord(vetID int64, entry domain.WeeklyAvailability) availabilityRecord {
	return availabilityRecord{
		VetID:       vetID,
		Day:         int(entry.Day),
		StartMinute: int(entry.Start),
		EndMinute:   int(entry.End),
	}
}

func (r availabilityRecord) toDomain() domain.WeeklyAvailability {
	return domain.WeeklyAvailability{
		Day:   time.Weekday(r.Day),
		Start: domain.TimeOfDay(r.StartMinute),
		End:   domain.TimeOfDay(r.EndMinute),
	}
}
