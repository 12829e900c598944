package patient

import (
	"context"
)

// Repository is the persistence collaborator for patients. Lookups that find
// nothing return (nil, nil); mutation methods report affected row counts.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByNHSNumber(ctx context.Context, nhsNumber string) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	UpdateFields(ctx context.Context, nhsNumber string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, nhsNumber string) (int64, error)
	Exists(ctx context.Context, nhsNumber string) (bool, error)
}
