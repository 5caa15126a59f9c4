package handover

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// recentNoteWindow is how far back the detector looks for a clinical note
// before flagging a patient as undocumented. The window is anchored to the
// evaluation clock, not to the shift.
const recentNoteWindow = 24 * time.Hour

// Detection is the result of one detector pass. Warnings carry per-patient
// lookup failures; a failed patient is skipped, never fatal for the batch.
type Detection struct {
	Critical []CriticalPatientInfo `json:"critical"`
	Warnings []string              `json:"warnings,omitempty"`
}

// detector scans patients for conditions that need the incoming shift's
// attention. It is read-only and safe to run concurrently.
type detector struct {
	records ClinicalRecordGateway
}

// Detect evaluates every patient id independently and returns the critical
// ones, ordered by urgent-task count descending. Ties keep input order.
func (d *detector) Detect(ctx context.Context, patientIDs []uuid.UUID, now time.Time) *Detection {
	type slot struct {
		info *CriticalPatientInfo
		warn string
	}
	slots := make([]slot, len(patientIDs))

	var wg sync.WaitGroup
	for i, id := range patientIDs {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			info, err := d.evaluate(ctx, id, now)
			if err != nil {
				slots[i].warn = fmt.Sprintf("patient %s: %v", id, err)
				return
			}
			slots[i].info = info
		}(i, id)
	}
	wg.Wait()

	result := &Detection{}
	for _, s := range slots {
		if s.warn != "" {
			result.Warnings = append(result.Warnings, s.warn)
		}
		if s.info != nil {
			result.Critical = append(result.Critical, *s.info)
		}
	}

	sort.SliceStable(result.Critical, func(i, j int) bool {
		return result.Critical[i].UrgentTasksCount > result.Critical[j].UrgentTasksCount
	})

	return result
}

// evaluate inspects a single patient. A missing patient yields (nil, nil);
// a patient with no triggers also yields (nil, nil).
func (d *detector) evaluate(ctx context.Context, patientID uuid.UUID, now time.Time) (*CriticalPatientInfo, error) {
	p, err := d.records.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("fetch patient: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	openTasks, err := d.records.GetOpenTasksForPatient(ctx, patientID, p.Hospital)
	if err != nil {
		return nil, fmt.Errorf("fetch open tasks: %w", err)
	}

	var urgent, overdueHigh []*TaskInfo
	for _, t := range openTasks {
		switch {
		case t.Priority == PriorityUrgent:
			urgent = append(urgent, t)
		case t.Priority == PriorityHigh && t.DueDate != nil && t.DueDate.Before(now):
			overdueHigh = append(overdueHigh, t)
		}
	}

	note, err := d.records.GetMostRecentNoteSince(ctx, patientID, now.Add(-recentNoteWindow))
	if err != nil {
		return nil, fmt.Errorf("fetch recent note: %w", err)
	}

	var triggers []Trigger
	if len(urgent) > 0 {
		titles := make([]string, len(urgent))
		for i, t := range urgent {
			titles[i] = t.Title
		}
		triggers = append(triggers, Trigger{Kind: TriggerUrgentTasks, Count: len(urgent), Titles: titles})
	}
	if len(overdueHigh) > 0 {
		triggers = append(triggers, Trigger{Kind: TriggerOverdueTasks, Count: len(overdueHigh)})
	}
	if note == nil {
		triggers = append(triggers, Trigger{Kind: TriggerNoRecentNote})
	}

	if len(triggers) == 0 {
		return nil, nil
	}

	info := &CriticalPatientInfo{
		PatientID:         patientID,
		PatientName:       p.FullName(),
		Reason:            RenderTriggers(triggers),
		Triggers:          triggers,
		PendingTasksCount: len(openTasks),
		UrgentTasksCount:  len(urgent),
	}
	if p.BedNumber != nil {
		info.BedNumber = *p.BedNumber
	}
	if note != nil {
		created := note.CreatedAt
		info.LastSoapDate = &created
	}
	return info, nil
}

// RenderTriggers turns structured trigger tags into the human-readable
// reason string stored on CriticalPatientInfo. Phrases join with " | ".
func RenderTriggers(triggers []Trigger) string {
	phrases := make([]string, 0, len(triggers))
	for _, tr := range triggers {
		switch tr.Kind {
		case TriggerUrgentTasks:
			phrases = append(phrases, fmt.Sprintf("%d urgent task(s): %s", tr.Count, strings.Join(tr.Titles, ", ")))
		case TriggerOverdueTasks:
			phrases = append(phrases, fmt.Sprintf("%d overdue high-priority task(s)", tr.Count))
		case TriggerNoRecentNote:
			phrases = append(phrases, "no clinical note in the last 24h")
		}
	}
	return strings.Join(phrases, " | ")
}
