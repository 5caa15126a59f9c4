package handover

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClinicalRecordGateway is the read-only view of the clinical record the
// handover core depends on. Lookups by id return (nil, nil) when the record
// does not exist; errors are reserved for infrastructure failures.
type ClinicalRecordGateway interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*PatientInfo, error)
	GetPatientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*PatientInfo, error)
	GetOpenTasksForPatient(ctx context.Context, patientID uuid.UUID, hospital string) ([]*TaskInfo, error)
	GetTasksByIDs(ctx context.Context, ids []uuid.UUID) ([]*TaskInfo, error)
	GetMostRecentNoteSince(ctx context.Context, patientID uuid.UUID, since time.Time) (*NoteInfo, error)
	GetClinicianByUserID(ctx context.Context, userID string) (*ClinicianInfo, error)
}

// PatientInfo is the patient projection used for detection and summaries.
type PatientInfo struct {
	ID        uuid.UUID
	Hospital  string
	MRN       string
	FirstName string
	LastName  string
	BirthDate *time.Time
	Gender    *string
	BedNumber *string
	Room      *string
	Diagnosis *string
	Allergies *string
	// LatestNote is attached during finalize hydration; nil when the
	// patient has no recent note.
	LatestNote *NoteInfo
}

// FullName renders "Last, First" the way ward lists do.
func (p *PatientInfo) FullName() string {
	return p.LastName + ", " + p.FirstName
}

// TaskPriority mirrors the clinical task priority scale.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskInfo is the task projection used for detection and summaries.
// PatientID is nil for general (unassigned) tasks.
type TaskInfo struct {
	ID           uuid.UUID
	PatientID    *uuid.UUID
	Hospital     string
	Title        string
	Description  *string
	Status       string
	Priority     TaskPriority
	DueDate      *time.Time
	AssignedName *string
}

// NoteInfo is the SOAP note projection used for detection and summaries.
type NoteInfo struct {
	ID          uuid.UUID
	PatientID   uuid.UUID
	CreatedAt   time.Time
	Subjective  *string
	Objective   *string
	Assessment  *string
	Plan        *string
	BP          *string
	HeartRate   *int
	RespRate    *int
	Temperature *float64
	O2Sat       *int
}

// ClinicianInfo is the clinician projection used to resolve handover creators.
type ClinicianInfo struct {
	ID        uuid.UUID
	UserID    string
	FirstName string
	LastName  string
	Role      string
	Hospital  string
}
