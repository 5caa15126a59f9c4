package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository is the persistence contract for clinical tasks. Lookups by
// id return (nil, nil) when no row matches.
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// GetByIDs returns tasks in the caller's id order, with the assignee
	// name joined in.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	// ListOpenByPatient returns pending and in-progress tasks for a
	// patient, scoped to the given hospital.
	ListOpenByPatient(ctx context.Context, patientID uuid.UUID, hospital string) ([]*Task, error)
	ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Task, int, error)
}
