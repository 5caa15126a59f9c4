package handover

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HandoverRepository is the persistence contract for handovers. Lookups
// return (nil, nil) when no row matches. Create must fail with a
// CodeDuplicate error when an open handover already occupies the same
// (hospital, service, shift type, shift date) slot; the Postgres
// implementation backs this with a partial unique index so concurrent
// creates cannot both succeed.
type HandoverRepository interface {
	Create(ctx context.Context, h *Handover) error
	GetByID(ctx context.Context, id uuid.UUID) (*Handover, error)
	FindOpenBySlot(ctx context.Context, hospital, service string, shiftType ShiftType, shiftDate time.Time) (*Handover, error)
	// UpdateOpen persists payload fields and status, guarded so it only
	// touches a row that is still open. Returns false when no open row
	// matched (missing or already finalized).
	UpdateOpen(ctx context.Context, h *Handover) (bool, error)
	// Finalize atomically applies the finalization artifacts and bumps the
	// version, guarded on status. Returns false when the row was missing
	// or already finalized.
	Finalize(ctx context.Context, id uuid.UUID, summary string, critical []CriticalPatientInfo, finalizedAt time.Time) (bool, error)
	ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Handover, int, error)
}
