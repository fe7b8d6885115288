package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/application/types"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

// Service drives the appointment negotiation lifecycle: it loads the
// aggregate, applies the requested transition and writes it back with the
// pre-transition status as a compare-and-swap guard.
type Service struct {
	repo       ports.Repository
	pets       ports.PetDirectory
	notifier   ports.Notifier
	completion ports.CompletionScheduler
	clock      func() time.Time
}

var _ ports.Service = (*Service)(nil)

type Option func(*Service)

// WithPetDirectory enables ownership checks on creation.
func WithPetDirectory(pets ports.PetDirectory) Option {
	return func(s *Service) { s.pets = pets }
}

// WithNotifier sets the transition notifier. Dispatch errors are swallowed;
// the notifier adapter is expected to log them.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithCompletionScheduler arranges durable completion of confirmed
// appointments once their slot has elapsed.
func WithCompletionScheduler(c ports.CompletionScheduler) Option {
	return func(s *Service) { s.completion = c }
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: ports.NoopNotifier,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, input types.CreateAppointmentInput) (*domain.Appointment, error) {
	if s.pets != nil {
		if err := s.pets.VerifyOwnership(ctx, input.OwnerID, input.PetIDs); err != nil {
			return nil, err
		}
	}

	appointment, err := domain.NewAppointment(
		uuid.New(),
		input.VetID,
		input.OwnerID,
		input.PetIDs,
		input.CandidateSlots,
		s.clock(),
	)
	if err != nil {
		return nil, mapError(err)
	}

	return s.repo.Create(ctx, appointment)
}

func (s *Service) Confirm(ctx context.Context, input types.ConfirmAppointmentInput) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	expected := appointment.Status
	if err := appointment.Confirm(input.By, input.ChosenSlots, s.clock()); err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Update(ctx, appointment, expected)
	if err != nil {
		return nil, err
	}

	if s.completion != nil {
		// Completion is also covered by the periodic sweep, so a scheduling
		// failure must not undo the confirmation.
		_ = s.completion.ScheduleCompletion(ctx, saved)
	}
	_ = s.notifier.AppointmentChanged(ctx, saved)
	return saved, nil
}

func (s *Service) Reject(ctx context.Context, input types.RejectAppointmentInput) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	expected := appointment.Status
	if err := appointment.Reject(input.By, input.Reason, s.clock()); err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Update(ctx, appointment, expected)
	if err != nil {
		return nil, err
	}

	_ = s.notifier.AppointmentChanged(ctx, saved)
	return saved, nil
}

func (s *Service) Cancel(ctx context.Context, input types.CancelAppointmentInput) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	expected := appointment.Status
	if err := appointment.Cancel(input.By, input.Reason, s.clock()); err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Update(ctx, appointment, expected)
	if err != nil {
		return nil, err
	}

	_ = s.notifier.AppointmentChanged(ctx, saved)
	return saved, nil
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := appointment.Status
	if err := appointment.Complete(s.clock()); err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Update(ctx, appointment, expected)
	if err != nil {
		return nil, err
	}

	_ = s.notifier.AppointmentChanged(ctx, saved)
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByVet(ctx context.Context, vetID int64) ([]*domain.Appointment, error) {
	return s.repo.ListByVet(ctx, vetID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// CompleteElapsed sweeps confirmed appointments whose slot has ended and
// marks them completed. Appointments that change state mid-sweep are skipped.
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.clock()
	elapsed, err := s.repo.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, appointment := range elapsed {
		expected := appointment.Status
		if err := appointment.Complete(now); err != nil {
			continue
		}
		saved, err := s.repo.Update(ctx, appointment, expected)
		if err != nil {
			continue
		}
		completed++
		_ = s.notifier.AppointmentChanged(ctx, saved)
	}
	return completed, nil
}
