package soap

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoteRepository persists SOAP notes. Lookups that find nothing return
// (nil, nil).
type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error)
	MostRecentSince(ctx context.Context, patientID uuid.UUID, since time.Time) (*Note, error)
}
