package task

import (
	"time"

	"github.com/google/uuid"
)

// Task maps to the task table. PatientID is nil for general ward tasks not
// tied to a single patient.
type Task struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Hospital     string     `db:"hospital" json:"hospital"`
	PatientID    *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	Title        string     `db:"title" json:"title"`
	Description  *string    `db:"description" json:"description,omitempty"`
	Status       string     `db:"status" json:"status"`
	Priority     string     `db:"priority" json:"priority"`
	DueDate      *time.Time `db:"due_date" json:"due_date,omitempty"`
	AssignedToID *uuid.UUID `db:"assigned_to_id" json:"assigned_to_id,omitempty"`
	CreatedByID  *uuid.UUID `db:"created_by_id" json:"created_by_id,omitempty"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`

	// AssignedToName is a join projection, populated on batch reads.
	AssignedToName *string `db:"-" json:"assigned_to_name,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// IsOpen reports whether the task still needs work.
func (t *Task) IsOpen() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}
