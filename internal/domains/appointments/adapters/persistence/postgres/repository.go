package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists appointments in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&appointmentRecord{})
	}
	return repo
}

type slotRecord struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// appointmentRecord maps the aggregate to a single row. The candidate slots
// travel as a jsonb document; the confirmed slot is flattened into columns so
// the completion sweep can filter on confirmed_end.
type appointmentRecord struct {
	ID      uuid.UUID     `gorm:"primaryKey;column:id;type:uuid"`
	VetID   int64         `gorm:"column:vet_id;index:idx_appointments_vet"`
	OwnerID int64         `gorm:"column:owner_id;index:idx_appointments_owner"`
	PetIDs  pq.Int64Array `gorm:"column:pet_ids;type:bigint[]"`

	RequestedSlots []slotRecord `gorm:"column:requested_slots;type:jsonb;serializer:json"`

	Status string `gorm:"column:status;index:idx_appointments_status"`

	ConfirmedStart *time.Time `gorm:"column:confirmed_start"`
	ConfirmedEnd   *time.Time `gorm:"column:confirmed_end"`
	ConfirmedAt    *time.Time `gorm:"column:confirmed_at"`

	RejectionReason *string    `gorm:"column:rejection_reason"`
	RejectedAt      *time.Time `gorm:"column:rejected_at"`

	CancelReason *string    `gorm:"column:cancel_reason"`
	CancelledBy  *string    `gorm:"column:cancelled_by"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`

	CompletedAt *time.Time `gorm:"column:completed_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (appointmentRecord) TableName() string { return "appointments" }

func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(appointment)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record appointmentRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Update writes the aggregate behind a status guard, so two conflicting
// transitions can never both land.
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment, expected domain.Status) (*domain.Appointment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(appointment)
	result := r.db.WithContext(ctx).
		Model(&appointmentRecord{}).
		Where("id = ? AND status = ?", record.ID, string(expected)).
		Select("*").
		Omit("id", "created_at").
		Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&appointmentRecord{}).
			Where("id = ?", record.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ports.ErrNotFound
		}
		return nil, ports.ErrConcurrencyConflict
	}
	return r.GetByID(ctx, appointment.ID)
}

func (r *Repository) ListByVet(ctx context.Context, vetID int64) ([]*domain.Appointment, error) {
	return r.list(ctx, "vet_id = ?", vetID)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error) {
	return r.list(ctx, "owner_id = ?", ownerID)
}

func (r *Repository) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Appointment, error) {
	return r.list(ctx, "status = ? AND confirmed_end < ?", string(domain.StatusConfirmed), cutoff)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []appointmentRecord
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}
	appointments := make([]*domain.Appointment, 0, len(records))
	for _, record := range records {
		appointments = append(appointments, record.toDomain())
	}
	return appointments, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres appointment repository not configured")
	}
	return nil
}

func toRecord(appointment *domain.Appointment) appointmentRecord {
	record := appointmentRecord{
		ID:        appointment.ID,
		VetID:     appointment.VetID,
		OwnerID:   appointment.OwnerID,
		PetIDs:    pq.Int64Array(append([]int64{}, appointment.PetIDs...)),
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}
	record.RequestedSlots = make([]slotRecord, 0, len(appointment.RequestedSlots))
	for _, slot := range appointment.RequestedSlots {
		record.RequestedSlots = append(record.RequestedSlots, slotRecord{Start: slot.Start, End: slot.End})
	}
	if c := appointment.Confirmation; c != nil {
		record.ConfirmedStart = timePtr(c.Slot.Start)
		record.ConfirmedEnd = timePtr(c.Slot.End)
		record.ConfirmedAt = timePtr(c.At)
	}
	if rej := appointment.Rejection; rej != nil {
		record.RejectionReason = stringPtr(rej.Reason)
		record.RejectedAt = timePtr(rej.At)
	}
	if c := appointment.Cancellation; c != nil {
		record.CancelReason = stringPtr(c.Reason)
		record.CancelledBy = stringPtr(string(c.By))
		record.CancelledAt = timePtr(c.At)
	}
	if !appointment.CompletedAt.IsZero() {
		record.CompletedAt = timePtr(appointment.CompletedAt)
	}
	return record
}

func (r appointmentRecord) toDomain() *domain.Appointment {
	appointment := &domain.Appointment{
		ID:        r.ID,
		VetID:     r.VetID,
		OwnerID:   r.OwnerID,
		PetIDs:    append([]int64{}, r.PetIDs...),
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
	}
	appointment.RequestedSlots = make([]timeslot.Slot, 0, len(r.RequestedSlots))
	for _, slot := range r.RequestedSlots {
		appointment.RequestedSlots = append(appointment.RequestedSlots, timeslot.Slot{Start: slot.Start, End: slot.End})
	}
	if r.ConfirmedStart != nil && r.ConfirmedEnd != nil && r.ConfirmedAt != nil {
		appointment.Confirmation = &domain.Confirmation{
			Slot: timeslot.Slot{Start: *r.ConfirmedStart, End: *r.ConfirmedEnd},
			At:   *r.ConfirmedAt,
		}
	}
	if r.RejectionReason != nil && r.RejectedAt != nil {
		appointment.Rejection = &domain.Rejection{Reason: *r.RejectionReason, At: *r.RejectedAt}
	}
	if r.CancelledBy != nil && r.CancelledAt != nil {
		reason := ""
		if r.CancelReason != nil {
			reason = *r.CancelReason
		}
		appointment.Cancellation = &domain.Cancellation{
			Reason: reason,
			By:     domain.Actor(*r.CancelledBy),
			At:     *r.CancelledAt,
		}
	}
	if r.CompletedAt != nil {
		appointment.CompletedAt = *r.CompletedAt
	}
	return appointment
}

func timePtr(t time.Time) *time.Time { return &t }

func stringPtr(s string) *string { return &s }
