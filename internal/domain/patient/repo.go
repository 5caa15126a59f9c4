package patient

import (
	"context"

	"github.com/google/uuid"
)

// PatientRepository is the persistence contract for patients. Lookups by id
// return (nil, nil) when no row matches.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error)
	Update(ctx context.Context, p *Patient) error
	ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Patient, int, error)
}
