package handover

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guardia/guardia/internal/platform/clock"
)

const (
	shiftDateLayout = "2006-01-02"
	shiftTimeLayout = "15:04"
)

// Service is the handover lifecycle engine. It owns the draft ->
// in_progress -> finalized state machine and orchestrates detection and
// summary generation at finalization.
type Service struct {
	handovers HandoverRepository
	records   ClinicalRecordGateway
	clk       clock.Clock
}

func NewService(handovers HandoverRepository, records ClinicalRecordGateway, clk clock.Clock) *Service {
	return &Service{handovers: handovers, records: records, clk: clk}
}

// CreateInput carries the caller-supplied fields for a new handover.
// ShiftDate is "2006-01-02"; StartTime and EndTime are "15:04".
type CreateInput struct {
	Hospital  string  `json:"hospital"`
	Service   string  `json:"service"`
	ShiftType string  `json:"shift_type"`
	ShiftDate string  `json:"shift_date"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
}

// Create opens a new draft handover for the creator's hospital.
func (s *Service) Create(ctx context.Context, in CreateInput, creatorUserID string) (*Handover, error) {
	if in.Hospital == "" {
		return nil, validationError("hospital is required")
	}
	if in.Service == "" {
		return nil, validationError("service is required")
	}
	shiftType := ShiftType(in.ShiftType)
	if !validShiftTypes[shiftType] {
		return nil, validationError("invalid shift type: %s", in.ShiftType)
	}
	shiftDate, err := time.Parse(shiftDateLayout, in.ShiftDate)
	if err != nil {
		return nil, validationError("invalid shift date %q: expected %s", in.ShiftDate, shiftDateLayout)
	}
	if _, err := time.Parse(shiftTimeLayout, in.StartTime); err != nil {
		return nil, validationError("invalid start time %q: expected %s", in.StartTime, shiftTimeLayout)
	}
	if in.EndTime != nil {
		if _, err := time.Parse(shiftTimeLayout, *in.EndTime); err != nil {
			return nil, validationError("invalid end time %q: expected %s", *in.EndTime, shiftTimeLayout)
		}
	}

	creator, err := s.records.GetClinicianByUserID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("resolve creator: %w", err)
	}
	if creator == nil {
		return nil, notFoundError("clinician %s not found", creatorUserID)
	}
	if creator.Hospital != in.Hospital {
		return nil, scopeMismatchError("handovers must be created in the creator's hospital (%s)", creator.Hospital)
	}

	// Friendly pre-check; the unique index in the repository closes the
	// race between concurrent creates.
	existing, err := s.handovers.FindOpenBySlot(ctx, in.Hospital, in.Service, shiftType, shiftDate)
	if err != nil {
		return nil, fmt.Errorf("check open handover: %w", err)
	}
	if existing != nil {
		return nil, duplicateError("an open handover already exists for %s/%s %s %s",
			in.Hospital, in.Service, shiftType, in.ShiftDate)
	}

	h := &Handover{
		Hospital:           in.Hospital,
		Service:            in.Service,
		ShiftType:          shiftType,
		ShiftDate:          shiftDate,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		CreatedBy:          creator.ID,
		Status:             StatusDraft,
		IncludedPatientIDs: []uuid.UUID{},
		IncludedTaskIDs:    []uuid.UUID{},
		ChecklistItems:     []ChecklistItem{},
	}
	if err := s.handovers.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// UpdatePatch carries a partial update. Nil fields are left untouched.
type UpdatePatch struct {
	IncludedPatientIDs *[]uuid.UUID     `json:"included_patient_ids,omitempty"`
	IncludedTaskIDs    *[]uuid.UUID     `json:"included_task_ids,omitempty"`
	ChecklistItems     *[]ChecklistItem `json:"checklist_items,omitempty"`
	GeneralNotes       *string          `json:"general_notes,omitempty"`
}

// Update applies a partial patch to an open handover. When a draft ends up
// with a non-empty patient list it is promoted to in_progress in the same
// call; promotion never reverses.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*Handover, error) {
	h, err := s.handovers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load handover: %w", err)
	}
	if h == nil {
		return nil, notFoundError("handover %s not found", id)
	}
	if h.Status == StatusFinalized {
		return nil, invalidStateError("handover %s is finalized and cannot be modified", id)
	}

	if patch.IncludedPatientIDs != nil {
		h.IncludedPatientIDs = *patch.IncludedPatientIDs
	}
	if patch.IncludedTaskIDs != nil {
		h.IncludedTaskIDs = *patch.IncludedTaskIDs
	}
	if patch.ChecklistItems != nil {
		h.ChecklistItems = *patch.ChecklistItems
	}
	if patch.GeneralNotes != nil {
		h.GeneralNotes = patch.GeneralNotes
	}

	if h.Status == StatusDraft && len(h.IncludedPatientIDs) > 0 {
		h.Status = StatusInProgress
	}

	ok, err := s.handovers.UpdateOpen(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("persist handover: %w", err)
	}
	if !ok {
		// Lost a race with a concurrent finalize.
		return nil, invalidStateError("handover %s is finalized and cannot be modified", id)
	}
	return h, nil
}

// Finalize closes the handover: hydrates the included records, runs the
// critical-patient detector, renders the summary, and freezes everything
// into the record. The second of two concurrent calls observes the
// finalized status and fails.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*Handover, error) {
	h, err := s.handovers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load handover: %w", err)
	}
	if h == nil {
		return nil, notFoundError("handover %s not found", id)
	}
	if h.Status == StatusFinalized {
		return nil, invalidStateError("handover %s is already finalized", id)
	}
	if len(h.IncludedPatientIDs) == 0 {
		return nil, validationError("cannot finalize a handover with no patients")
	}

	now := s.clk.Now()

	patients, err := s.records.GetPatientsByIDs(ctx, h.IncludedPatientIDs)
	if err != nil {
		return nil, fmt.Errorf("hydrate patients: %w", err)
	}
	tasks, err := s.records.GetTasksByIDs(ctx, h.IncludedTaskIDs)
	if err != nil {
		return nil, fmt.Errorf("hydrate tasks: %w", err)
	}
	for _, p := range patients {
		note, err := s.records.GetMostRecentNoteSince(ctx, p.ID, now.Add(-recentNoteWindow))
		if err != nil {
			continue // summary degrades to no note; detection reports its own warnings
		}
		p.LatestNote = note
	}

	det := (&detector{records: s.records}).Detect(ctx, h.IncludedPatientIDs, now)
	summary := GenerateSummary(patients, tasks, det.Critical, now)

	ok, err := s.handovers.Finalize(ctx, id, summary.Document, det.Critical, now)
	if err != nil {
		return nil, fmt.Errorf("persist finalization: %w", err)
	}
	if !ok {
		return nil, invalidStateError("handover %s is already finalized", id)
	}

	h.Status = StatusFinalized
	h.GeneratedSummary = &summary.Document
	h.CriticalPatients = det.Critical
	h.FinalizedAt = &now
	h.Version++
	return h, nil
}

// Get returns a handover by id, or a CodeNotFound error.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Handover, error) {
	h, err := s.handovers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load handover: %w", err)
	}
	if h == nil {
		return nil, notFoundError("handover %s not found", id)
	}
	return h, nil
}

// ListByHospital pages through a hospital's handovers, newest first.
func (s *Service) ListByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Handover, int, error) {
	return s.handovers.ListByHospital(ctx, hospital, limit, offset)
}

// DetectCriticalPatients runs the detector standalone, for previewing
// which patients would be flagged before finalizing.
func (s *Service) DetectCriticalPatients(ctx context.Context, patientIDs []uuid.UUID) *Detection {
	return (&detector{records: s.records}).Detect(ctx, patientIDs, s.clk.Now())
}
