package clinician

import (
	"context"

	"github.com/google/uuid"
)

// ClinicianRepository persists clinicians. Lookups that find nothing
// return (nil, nil).
type ClinicianRepository interface {
	Create(ctx context.Context, c *Clinician) error
	GetByID(ctx context.Context, id uuid.UUID) (*Clinician, error)
	GetByUserID(ctx context.Context, userID string) (*Clinician, error)
	Update(ctx context.Context, c *Clinician) error
	ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Clinician, int, error)
}
