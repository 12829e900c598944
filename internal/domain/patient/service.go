package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carebook/carebook/internal/platform/validate"
)

// ErrDuplicate is returned when a create collides with an existing patient's
// NHS number.
var ErrDuplicate = fmt.Errorf("a patient with this NHS number already exists")

// Service implements patient register operations on top of a Repository.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "patient").Logger()}
}

// Create validates the input and registers a new patient. Duplicate NHS
// numbers are rejected with ErrDuplicate.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, in.NHSNumber)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	p := &Patient{
		ID:          uuid.New(),
		NHSNumber:   in.NHSNumber,
		Name:        in.Name,
		DateOfBirth: in.DateOfBirth,
		Postcode:    in.Postcode,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.log.Info().Str("nhs_number", p.NHSNumber).Msg("patient registered")
	return p, nil
}

// GetByNHSNumber returns the patient with the given NHS number. The raw value
// is normalized before lookup; (nil, nil) means no such patient.
func (s *Service) GetByNHSNumber(ctx context.Context, raw string) (*Patient, error) {
	nhs, ok := validate.FormatNHSNumber(raw)
	if !ok {
		return nil, validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
	}
	return s.repo.GetByNHSNumber(ctx, nhs)
}

// List returns a page of patients ordered by name plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update applies a partial update to the patient identified by raw. An update
// carrying no fields is a no-op that returns the current record; (nil, nil)
// means no such patient.
func (s *Service) Update(ctx context.Context, raw string, in UpdateInput) (*Patient, error) {
	nhs, ok := validate.FormatNHSNumber(raw)
	if !ok {
		return nil, validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
	}
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	fields := in.Fields()
	if len(fields) == 0 {
		return s.repo.GetByNHSNumber(ctx, nhs)
	}

	n, err := s.repo.UpdateFields(ctx, nhs, fields)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.repo.GetByNHSNumber(ctx, nhs)
}

// Delete removes the patient. The bool is false when no such patient exists.
func (s *Service) Delete(ctx context.Context, raw string) (bool, error) {
	nhs, ok := validate.FormatNHSNumber(raw)
	if !ok {
		return false, validationErrorf("invalid NHS number: must be 10 digits with valid checksum")
	}
	n, err := s.repo.Delete(ctx, nhs)
	if err != nil {
		return false, fmt.Errorf("delete patient: %w", err)
	}
	return n > 0, nil
}
