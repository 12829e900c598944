package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carebook/carebook/internal/platform/timeutil"
)

// Service implements the appointment lifecycle on top of a Repository.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "appointment").Logger()}
}

// Create validates the input and stores a new appointment.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	a := &Appointment{
		ID:         uuid.New(),
		Patient:    in.Patient,
		Status:     in.Status,
		Time:       in.Time,
		Duration:   in.Duration,
		Clinician:  in.Clinician,
		Department: in.Department,
		Postcode:   in.Postcode,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info().Str("id", a.ID.String()).Str("patient", a.Patient).Msg("appointment created")
	return a, nil
}

// GetByID returns the appointment with the given id, or (nil, nil) when no
// such appointment exists.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPatient returns a patient's appointments ordered by start time.
func (s *Service) ListByPatient(ctx context.Context, nhsNumber string) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, nhsNumber)
}

// ListByStatus returns all appointments in the given status ordered by start
// time.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Appointment, error) {
	if !status.Valid() {
		return nil, validationErrorf("invalid appointment status: %q", status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// ListByClinician returns a clinician's appointments ordered by start time.
func (s *Service) ListByClinician(ctx context.Context, clinician string) ([]*Appointment, error) {
	return s.repo.ListByClinician(ctx, clinician)
}

// ListByDepartment returns a department's appointments ordered by start time.
func (s *Service) ListByDepartment(ctx context.Context, department string) ([]*Appointment, error) {
	return s.repo.ListByDepartment(ctx, department)
}

// List returns a page of appointments ordered by start time plus the total
// count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateStatus moves an appointment to next, enforcing the terminal-cancelled
// rule. It returns (nil, nil) when the appointment does not exist and a
// *TransitionError when the move is not permitted.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next Status) (*Appointment, error) {
	if !next.Valid() {
		return nil, validationErrorf("invalid appointment status: %q", next)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if !CanTransition(current.Status, next) {
		return nil, &TransitionError{Current: current.Status, Requested: next}
	}

	n, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	s.log.Info().Str("id", id.String()).
		Str("from", string(current.Status)).Str("to", string(next)).
		Msg("appointment status updated")
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update. A status change goes through the same
// transition guard as UpdateStatus; an update carrying no fields is a no-op
// that returns the current record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if in.Status != nil && !CanTransition(current.Status, *in.Status) {
		return nil, &TransitionError{Current: current.Status, Requested: *in.Status}
	}

	fields := in.Fields()
	if len(fields) == 0 {
		return current, nil
	}

	n, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id)
}

// Cancel moves the appointment to cancelled. Cancelling an already cancelled
// appointment succeeds.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

// Attend marks the appointment as attended.
func (s *Service) Attend(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.UpdateStatus(ctx, id, StatusAttended)
}

// Delete removes the appointment. The bool is false when no such appointment
// exists.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}
	return n > 0, nil
}

// SweepOverdue scans scheduled and active appointments and marks the overdue
// ones as missed. A zero now means the current UTC instant. Appointments whose
// individual update fails are skipped so one bad record does not stall the
// sweep; the returned slice holds the appointments that were transitioned.
func (s *Service) SweepOverdue(ctx context.Context, now time.Time) ([]*Appointment, error) {
	if now.IsZero() {
		now = timeutil.UTCNow()
	}

	var swept []*Appointment
	for _, status := range []Status{StatusScheduled, StatusActive} {
		items, err := s.repo.ListByStatus(ctx, status)
		if err != nil {
			return swept, fmt.Errorf("sweep: list %s appointments: %w", status, err)
		}
		for _, a := range items {
			if !timeutil.IsOverdue(a.Time, a.Duration, now) {
				continue
			}
			updated, err := s.UpdateStatus(ctx, a.ID, StatusMissed)
			if err != nil {
				s.log.Warn().Err(err).Str("id", a.ID.String()).Msg("sweep: skipping appointment")
				continue
			}
			if updated != nil {
				swept = append(swept, updated)
			}
		}
	}

	if len(swept) > 0 {
		s.log.Info().Int("count", len(swept)).Msg("overdue appointments marked missed")
	}
	return swept, nil
}
