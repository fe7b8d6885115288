package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&availabilityRecord{},
		&appointmentRecord{},
		&petRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Weekly availability schema mirrors the scheduling Postgres adapter.
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

// Appointment schema mirrors the appointments Postgres adapter.
type appointmentRecord struct {
	ID              uuid.UUID     `gorm:"primaryKey;column:id;type:uuid"`
	VetID           int64         `gorm:"column:vet_id;index:idx_appointments_vet"`
	OwnerID         int64         `gorm:"column:owner_id;index:idx_appointments_owner"`
	PetIDs          pq.Int64Array `gorm:"column:pet_ids;type:bigint[]"`
	RequestedSlots  []byte        `gorm:"column:requested_slots;type:jsonb"`
	Status          string        `gorm:"column:status;index:idx_appointments_status"`
	ConfirmedStart  *time.Time    `gorm:"column:confirmed_start"`
	ConfirmedEnd    *time.Time    `gorm:"column:confirmed_end"`
	ConfirmedAt     *time.Time    `gorm:"column:confirmed_at"`
	RejectionReason *string       `gorm:"column:rejection_reason"`
	RejectedAt      *time.Time    `gorm:"column:rejected_at"`
	CancelReason    *string       `gorm:"column:cancel_reason"`
	CancelledBy     *string       `gorm:"column:cancelled_by"`
	CancelledAt     *time.Time    `gorm:"column:cancelled_at"`
	CompletedAt     *time.Time    `gorm:"column:completed_at"`
	CreatedAt       time.Time     `gorm:"column:created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at"`
}

func (appointmentRecord) TableName() string { return "appointments" }

// Pet schema mirrors the pets Postgres adapter.
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

// User schema mirrors the accounts Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Password  string    `gorm:"column:password_hash"`
	Role      string    `gorm:"column:role"`
	SubjectID int64     `gorm:"column:subject_id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
