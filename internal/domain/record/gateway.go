// Package record adapts the patient, task, soap and clinician services into
// the read-only clinical record view the handover core consumes.
package record

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guardia/guardia/internal/domain/clinician"
	"github.com/guardia/guardia/internal/domain/handover"
	"github.com/guardia/guardia/internal/domain/patient"
	"github.com/guardia/guardia/internal/domain/soap"
	"github.com/guardia/guardia/internal/domain/task"
)

type Gateway struct {
	patients   *patient.Service
	tasks      *task.Service
	notes      *soap.Service
	clinicians *clinician.Service
}

var _ handover.ClinicalRecordGateway = (*Gateway)(nil)

func NewGateway(patients *patient.Service, tasks *task.Service, notes *soap.Service, clinicians *clinician.Service) *Gateway {
	return &Gateway{patients: patients, tasks: tasks, notes: notes, clinicians: clinicians}
}

func (g *Gateway) GetPatient(ctx context.Context, id uuid.UUID) (*handover.PatientInfo, error) {
	p, err := g.patients.GetPatient(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return patientInfo(p), nil
}

func (g *Gateway) GetPatientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*handover.PatientInfo, error) {
	items, err := g.patients.GetPatientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	infos := make([]*handover.PatientInfo, 0, len(items))
	for _, p := range items {
		infos = append(infos, patientInfo(p))
	}
	return infos, nil
}

func (g *Gateway) GetOpenTasksForPatient(ctx context.Context, patientID uuid.UUID, hospital string) ([]*handover.TaskInfo, error) {
	items, err := g.tasks.ListOpenTasksByPatient(ctx, patientID, hospital)
	if err != nil {
		return nil, err
	}
	infos := make([]*handover.TaskInfo, 0, len(items))
	for _, t := range items {
		infos = append(infos, taskInfo(t))
	}
	return infos, nil
}

func (g *Gateway) GetTasksByIDs(ctx context.Context, ids []uuid.UUID) ([]*handover.TaskInfo, error) {
	items, err := g.tasks.GetTasksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	infos := make([]*handover.TaskInfo, 0, len(items))
	for _, t := range items {
		infos = append(infos, taskInfo(t))
	}
	return infos, nil
}

func (g *Gateway) GetMostRecentNoteSince(ctx context.Context, patientID uuid.UUID, since time.Time) (*handover.NoteInfo, error) {
	n, err := g.notes.MostRecentNoteSince(ctx, patientID, since)
	if err != nil || n == nil {
		return nil, err
	}
	return noteInfo(n), nil
}

func (g *Gateway) GetClinicianByUserID(ctx context.Context, userID string) (*handover.ClinicianInfo, error) {
	c, err := g.clinicians.GetClinicianByUserID(ctx, userID)
	if err != nil || c == nil {
		return nil, err
	}
	return &handover.ClinicianInfo{
		ID:        c.ID,
		UserID:    c.UserID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Role:      c.Role,
		Hospital:  c.Hospital,
	}, nil
}

func patientInfo(p *patient.Patient) *handover.PatientInfo {
	return &handover.PatientInfo{
		ID:        p.ID,
		Hospital:  p.Hospital,
		MRN:       p.MRN,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		BedNumber: p.BedNumber,
		Room:      p.Room,
		Diagnosis: p.Diagnosis,
		Allergies: p.Allergies,
	}
}

func taskInfo(t *task.Task) *handover.TaskInfo {
	return &handover.TaskInfo{
		ID:           t.ID,
		PatientID:    t.PatientID,
		Hospital:     t.Hospital,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     handover.TaskPriority(t.Priority),
		DueDate:      t.DueDate,
		AssignedName: t.AssignedToName,
	}
}

func noteInfo(n *soap.Note) *handover.NoteInfo {
	return &handover.NoteInfo{
		ID:          n.ID,
		PatientID:   n.PatientID,
		CreatedAt:   n.CreatedAt,
		Subjective:  n.Subjective,
		Objective:   n.Objective,
		Assessment:  n.Assessment,
		Plan:        n.Plan,
		BP:          n.BP,
		HeartRate:   n.HeartRate,
		RespRate:    n.RespRate,
		Temperature: n.Temperature,
		O2Sat:       n.O2Sat,
	}
}
