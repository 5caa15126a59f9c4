package handover

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a handover. Transitions only move
// forward: draft -> in_progress -> finalized.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusFinalized  Status = "finalized"
)

// ShiftType identifies the work period a handover covers.
type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftNight     ShiftType = "night"
)

var validShiftTypes = map[ShiftType]bool{
	ShiftMorning:   true,
	ShiftAfternoon: true,
	ShiftNight:     true,
}

// Handover maps to the handover table. It bundles the patients, tasks and
// notes one shift passes to the next, plus the artifacts generated at
// finalization.
type Handover struct {
	ID                 uuid.UUID             `db:"id" json:"id"`
	Hospital           string                `db:"hospital" json:"hospital"`
	Service            string                `db:"service" json:"service"`
	ShiftType          ShiftType             `db:"shift_type" json:"shift_type"`
	ShiftDate          time.Time             `db:"shift_date" json:"shift_date"`
	StartTime          string                `db:"start_time" json:"start_time"`
	EndTime            *string               `db:"end_time" json:"end_time,omitempty"`
	CreatedBy          uuid.UUID             `db:"created_by" json:"created_by"`
	Status             Status                `db:"status" json:"status"`
	IncludedPatientIDs []uuid.UUID           `db:"included_patient_ids" json:"included_patient_ids"`
	IncludedTaskIDs    []uuid.UUID           `db:"included_task_ids" json:"included_task_ids"`
	ChecklistItems     []ChecklistItem       `db:"checklist_items" json:"checklist_items"`
	GeneralNotes       *string               `db:"general_notes" json:"general_notes,omitempty"`
	GeneratedSummary   *string               `db:"generated_summary" json:"generated_summary,omitempty"`
	CriticalPatients   []CriticalPatientInfo `db:"critical_patients" json:"critical_patients,omitempty"`
	FinalizedAt        *time.Time            `db:"finalized_at" json:"finalized_at,omitempty"`
	Version            int                   `db:"version" json:"version"`
	CreatedAt          time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time             `db:"updated_at" json:"updated_at"`
}

// IsOpen reports whether the handover still accepts mutation.
func (h *Handover) IsOpen() bool {
	return h.Status == StatusDraft || h.Status == StatusInProgress
}

// ChecklistItem is one entry of a handover checklist.
type ChecklistItem struct {
	Description string     `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	CompletedBy *string    `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TriggerKind classifies why a patient was flagged as critical.
type TriggerKind string

const (
	TriggerUrgentTasks  TriggerKind = "urgent_tasks"
	TriggerOverdueTasks TriggerKind = "overdue_high_tasks"
	TriggerNoRecentNote TriggerKind = "no_recent_note"
)

// Trigger is a structured reason tag. Rendering to text happens separately
// so the reason string stays a presentation concern.
type Trigger struct {
	Kind   TriggerKind `json:"kind"`
	Count  int         `json:"count,omitempty"`
	Titles []string    `json:"titles,omitempty"`
}

// CriticalPatientInfo is the per-patient detection result. A snapshot of
// these is frozen into the handover at finalization.
type CriticalPatientInfo struct {
	PatientID         uuid.UUID  `json:"patient_id"`
	BedNumber         string     `json:"bed_number,omitempty"`
	PatientName       string     `json:"patient_name"`
	Reason            string     `json:"reason"`
	Triggers          []Trigger  `json:"triggers"`
	LastSoapDate      *time.Time `json:"last_soap_date,omitempty"`
	PendingTasksCount int        `json:"pending_tasks_count"`
	UrgentTasksCount  int        `json:"urgent_tasks_count"`
}
