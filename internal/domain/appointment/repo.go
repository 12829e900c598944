package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence collaborator for appointments. Lookups that
// find nothing return (nil, nil); mutation methods report affected row
// counts so the service can distinguish "not found" from success.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByPatient(ctx context.Context, nhsNumber string) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status Status) ([]*Appointment, error)
	ListByClinician(ctx context.Context, clinician string) ([]*Appointment, error)
	ListByDepartment(ctx context.Context, department string) ([]*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
