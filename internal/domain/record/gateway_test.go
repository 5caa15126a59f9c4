package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/guardia/guardia/internal/domain/clinician"
	"github.com/guardia/guardia/internal/domain/handover"
	"github.com/guardia/guardia/internal/domain/patient"
	"github.com/guardia/guardia/internal/domain/soap"
	"github.com/guardia/guardia/internal/domain/task"
	"github.com/guardia/guardia/internal/platform/clock"
)

type patientRepoStub struct {
	store map[uuid.UUID]*patient.Patient
}

func (s *patientRepoStub) Create(_ context.Context, p *patient.Patient) error {
	p.ID = uuid.New()
	s.store[p.ID] = p
	return nil
}
func (s *patientRepoStub) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.store[id], nil
}
func (s *patientRepoStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*patient.Patient, error) {
	var r []*patient.Patient
	for _, id := range ids {
		if p, ok := s.store[id]; ok {
			r = append(r, p)
		}
	}
	return r, nil
}
func (s *patientRepoStub) Update(_ context.Context, p *patient.Patient) error {
	s.store[p.ID] = p
	return nil
}
func (s *patientRepoStub) ListByHospital(_ context.Context, hospital string, limit, offset int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

type taskRepoStub struct {
	store map[uuid.UUID]*task.Task
}

func (s *taskRepoStub) Create(_ context.Context, t *task.Task) error {
	t.ID = uuid.New()
	s.store[t.ID] = t
	return nil
}
func (s *taskRepoStub) GetByID(_ context.Context, id uuid.UUID) (*task.Task, error) {
	return s.store[id], nil
}
func (s *taskRepoStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*task.Task, error) {
	var r []*task.Task
	for _, id := range ids {
		if t, ok := s.store[id]; ok {
			r = append(r, t)
		}
	}
	return r, nil
}
func (s *taskRepoStub) Update(_ context.Context, t *task.Task) error {
	s.store[t.ID] = t
	return nil
}
func (s *taskRepoStub) ListOpenByPatient(_ context.Context, patientID uuid.UUID, hospital string) ([]*task.Task, error) {
	var r []*task.Task
	for _, t := range s.store {
		if t.PatientID != nil && *t.PatientID == patientID && t.Hospital == hospital && t.IsOpen() {
			r = append(r, t)
		}
	}
	return r, nil
}
func (s *taskRepoStub) ListByHospital(_ context.Context, hospital string, limit, offset int) ([]*task.Task, int, error) {
	return nil, 0, nil
}

type noteRepoStub struct {
	store map[uuid.UUID]*soap.Note
}

func (s *noteRepoStub) Create(_ context.Context, n *soap.Note) error {
	n.ID = uuid.New()
	s.store[n.ID] = n
	return nil
}
func (s *noteRepoStub) GetByID(_ context.Context, id uuid.UUID) (*soap.Note, error) {
	return s.store[id], nil
}
func (s *noteRepoStub) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*soap.Note, int, error) {
	return nil, 0, nil
}
func (s *noteRepoStub) MostRecentSince(_ context.Context, patientID uuid.UUID, since time.Time) (*soap.Note, error) {
	var best *soap.Note
	for _, n := range s.store {
		if n.PatientID != patientID || n.CreatedAt.Before(since) {
			continue
		}
		if best == nil || n.CreatedAt.After(best.CreatedAt) {
			best = n
		}
	}
	return best, nil
}

type clinicianRepoStub struct {
	store map[string]*clinician.Clinician
}

func (s *clinicianRepoStub) Create(_ context.Context, c *clinician.Clinician) error {
	c.ID = uuid.New()
	s.store[c.UserID] = c
	return nil
}
func (s *clinicianRepoStub) GetByID(_ context.Context, id uuid.UUID) (*clinician.Clinician, error) {
	for _, c := range s.store {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (s *clinicianRepoStub) GetByUserID(_ context.Context, userID string) (*clinician.Clinician, error) {
	return s.store[userID], nil
}
func (s *clinicianRepoStub) Update(_ context.Context, c *clinician.Clinician) error {
	s.store[c.UserID] = c
	return nil
}
func (s *clinicianRepoStub) ListByHospital(_ context.Context, hospital string, limit, offset int) ([]*clinician.Clinician, int, error) {
	return nil, 0, nil
}

func newTestGateway() (*Gateway, *patientRepoStub, *taskRepoStub, *noteRepoStub, *clinicianRepoStub) {
	pr := &patientRepoStub{store: make(map[uuid.UUID]*patient.Patient)}
	tr := &taskRepoStub{store: make(map[uuid.UUID]*task.Task)}
	nr := &noteRepoStub{store: make(map[uuid.UUID]*soap.Note)}
	cr := &clinicianRepoStub{store: make(map[string]*clinician.Clinician)}
	clk := clock.Fixed(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	g := NewGateway(
		patient.NewService(pr),
		task.NewService(tr, clk),
		soap.NewService(nr),
		clinician.NewService(cr),
	)
	return g, pr, tr, nr, cr
}

func TestGateway_GetPatient(t *testing.T) {
	g, pr, _, _, _ := newTestGateway()
	bed := "12A"
	p := &patient.Patient{Hospital: "general", MRN: "MRN-1", FirstName: "Luis", LastName: "Mora", BedNumber: &bed}
	pr.Create(context.Background(), p)

	info, err := g.GetPatient(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil || info.MRN != "MRN-1" || info.FullName() != "Mora, Luis" {
		t.Errorf("unexpected projection: %+v", info)
	}
	if info.BedNumber == nil || *info.BedNumber != "12A" {
		t.Errorf("expected bed number to carry over, got %+v", info.BedNumber)
	}

	missing, err := g.GetPatient(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown patient, got %+v", missing)
	}
}

func TestGateway_OpenTasksScopedByHospital(t *testing.T) {
	g, _, tr, _, _ := newTestGateway()
	pid := uuid.New()
	tr.Create(context.Background(), &task.Task{Hospital: "general", PatientID: &pid,
		Title: "labs", Status: task.StatusPending, Priority: task.PriorityUrgent})
	tr.Create(context.Background(), &task.Task{Hospital: "north", PatientID: &pid,
		Title: "other site", Status: task.StatusPending, Priority: task.PriorityLow})

	infos, err := g.GetOpenTasksForPatient(context.Background(), pid, "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 task, got %d", len(infos))
	}
	if infos[0].Priority != handover.PriorityUrgent {
		t.Errorf("expected urgent priority, got %q", infos[0].Priority)
	}
}

func TestGateway_MostRecentNote(t *testing.T) {
	g, _, _, nr, _ := newTestGateway()
	pid := uuid.New()
	plan := "continue antibiotics"
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	nr.Create(context.Background(), &soap.Note{PatientID: pid, Hospital: "general",
		AuthorID: uuid.New(), Plan: &plan, CreatedAt: now.Add(-3 * time.Hour)})

	info, err := g.GetMostRecentNoteSince(context.Background(), pid, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil || info.Plan == nil || *info.Plan != plan {
		t.Errorf("unexpected note projection: %+v", info)
	}

	none, err := g.GetMostRecentNoteSince(context.Background(), pid, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil outside the window, got %+v", none)
	}
}

func TestGateway_GetClinicianByUserID(t *testing.T) {
	g, _, _, _, cr := newTestGateway()
	cr.Create(context.Background(), &clinician.Clinician{UserID: "doc-1",
		FirstName: "Ana", LastName: "Ruiz", Role: "physician", Hospital: "general", Active: true})

	info, err := g.GetClinicianByUserID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil || info.Hospital != "general" || info.Role != "physician" {
		t.Errorf("unexpected projection: %+v", info)
	}

	missing, err := g.GetClinicianByUserID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown user, got %+v", missing)
	}
}
