package handover

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/guardia/guardia/internal/platform/clock"
)

// -- Mock Repository --

type mockHandoverRepo struct {
	store map[uuid.UUID]*Handover
}

func newMockHandoverRepo() *mockHandoverRepo {
	return &mockHandoverRepo{store: make(map[uuid.UUID]*Handover)}
}

func (m *mockHandoverRepo) Create(_ context.Context, h *Handover) error {
	for _, existing := range m.store {
		if existing.IsOpen() && existing.Hospital == h.Hospital && existing.Service == h.Service &&
			existing.ShiftType == h.ShiftType && existing.ShiftDate.Equal(h.ShiftDate) {
			return duplicateError("an open handover already exists for this slot")
		}
	}
	h.ID = uuid.New()
	cp := *h
	m.store[h.ID] = &cp
	return nil
}

func (m *mockHandoverRepo) GetByID(_ context.Context, id uuid.UUID) (*Handover, error) {
	h, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (m *mockHandoverRepo) FindOpenBySlot(_ context.Context, hospital, service string, shiftType ShiftType, shiftDate time.Time) (*Handover, error) {
	for _, h := range m.store {
		if h.IsOpen() && h.Hospital == hospital && h.Service == service &&
			h.ShiftType == shiftType && h.ShiftDate.Equal(shiftDate) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockHandoverRepo) UpdateOpen(_ context.Context, h *Handover) (bool, error) {
	existing, ok := m.store[h.ID]
	if !ok || existing.Status == StatusFinalized {
		return false, nil
	}
	cp := *h
	m.store[h.ID] = &cp
	return true, nil
}

func (m *mockHandoverRepo) Finalize(_ context.Context, id uuid.UUID, summary string, critical []CriticalPatientInfo, finalizedAt time.Time) (bool, error) {
	existing, ok := m.store[id]
	if !ok || existing.Status == StatusFinalized {
		return false, nil
	}
	existing.Status = StatusFinalized
	existing.GeneratedSummary = &summary
	existing.CriticalPatients = critical
	at := finalizedAt
	existing.FinalizedAt = &at
	existing.Version++
	return true, nil
}

func (m *mockHandoverRepo) ListByHospital(_ context.Context, hospital string, limit, offset int) ([]*Handover, int, error) {
	var items []*Handover
	for _, h := range m.store {
		if h.Hospital == hospital {
			cp := *h
			items = append(items, &cp)
		}
	}
	return items, len(items), nil
}

// -- Mock Gateway --

type mockGateway struct {
	patients      map[uuid.UUID]*PatientInfo
	openTasks     map[uuid.UUID][]*TaskInfo
	tasksByID     map[uuid.UUID]*TaskInfo
	notes         map[uuid.UUID]*NoteInfo
	clinicians    map[string]*ClinicianInfo
	patientErr    map[uuid.UUID]error
	openTasksErr  map[uuid.UUID]error
	recentNoteErr map[uuid.UUID]error
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		patients:      make(map[uuid.UUID]*PatientInfo),
		openTasks:     make(map[uuid.UUID][]*TaskInfo),
		tasksByID:     make(map[uuid.UUID]*TaskInfo),
		notes:         make(map[uuid.UUID]*NoteInfo),
		clinicians:    make(map[string]*ClinicianInfo),
		patientErr:    make(map[uuid.UUID]error),
		openTasksErr:  make(map[uuid.UUID]error),
		recentNoteErr: make(map[uuid.UUID]error),
	}
}

func (g *mockGateway) GetPatient(_ context.Context, id uuid.UUID) (*PatientInfo, error) {
	if err := g.patientErr[id]; err != nil {
		return nil, err
	}
	return g.patients[id], nil
}

func (g *mockGateway) GetPatientsByIDs(_ context.Context, ids []uuid.UUID) ([]*PatientInfo, error) {
	var out []*PatientInfo
	for _, id := range ids {
		if p, ok := g.patients[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (g *mockGateway) GetOpenTasksForPatient(_ context.Context, patientID uuid.UUID, hospital string) ([]*TaskInfo, error) {
	if err := g.openTasksErr[patientID]; err != nil {
		return nil, err
	}
	var out []*TaskInfo
	for _, t := range g.openTasks[patientID] {
		if t.Hospital == hospital {
			out = append(out, t)
		}
	}
	return out, nil
}

func (g *mockGateway) GetTasksByIDs(_ context.Context, ids []uuid.UUID) ([]*TaskInfo, error) {
	var out []*TaskInfo
	for _, id := range ids {
		if t, ok := g.tasksByID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (g *mockGateway) GetMostRecentNoteSince(_ context.Context, patientID uuid.UUID, since time.Time) (*NoteInfo, error) {
	if err := g.recentNoteErr[patientID]; err != nil {
		return nil, err
	}
	n, ok := g.notes[patientID]
	if !ok || n.CreatedAt.Before(since) {
		return nil, nil
	}
	return n, nil
}

func (g *mockGateway) GetClinicianByUserID(_ context.Context, userID string) (*ClinicianInfo, error) {
	return g.clinicians[userID], nil
}

// -- Fixtures --

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockHandoverRepo, *mockGateway) {
	repo := newMockHandoverRepo()
	gw := newMockGateway()
	gw.clinicians["doc-1"] = &ClinicianInfo{
		ID: uuid.New(), UserID: "doc-1", FirstName: "Ana", LastName: "Ruiz",
		Role: "physician", Hospital: "general",
	}
	svc := NewService(repo, gw, clock.Fixed(testNow))
	return svc, repo, gw
}

func validCreateInput() CreateInput {
	return CreateInput{
		Hospital:  "general",
		Service:   "internal-medicine",
		ShiftType: "morning",
		ShiftDate: "2025-03-10",
		StartTime: "08:00",
	}
}

func addPatient(gw *mockGateway, bed string) uuid.UUID {
	id := uuid.New()
	b := bed
	gw.patients[id] = &PatientInfo{
		ID: id, Hospital: "general", MRN: "MRN-" + id.String()[:8],
		FirstName: "Luis", LastName: "Gomez", BedNumber: &b,
	}
	return id
}

// -- Create --

func TestCreate_Success(t *testing.T) {
	svc, _, _ := newTestService()
	h, err := svc.Create(context.Background(), validCreateInput(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Status != StatusDraft {
		t.Errorf("expected draft status, got %q", h.Status)
	}
	if h.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if len(h.IncludedPatientIDs) != 0 || len(h.IncludedTaskIDs) != 0 || len(h.ChecklistItems) != 0 {
		t.Error("expected empty payload collections")
	}
	if h.Version != 0 {
		t.Errorf("expected version 0 at creation, got %d", h.Version)
	}
}

func TestCreate_InvalidShiftType(t *testing.T) {
	svc, _, _ := newTestService()
	in := validCreateInput()
	in.ShiftType = "graveyard"
	_, err := svc.Create(context.Background(), in, "doc-1")
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_InvalidDate(t *testing.T) {
	svc, _, _ := newTestService()
	in := validCreateInput()
	in.ShiftDate = "10/03/2025"
	_, err := svc.Create(context.Background(), in, "doc-1")
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_InvalidStartTime(t *testing.T) {
	svc, _, _ := newTestService()
	in := validCreateInput()
	in.StartTime = "8am"
	_, err := svc.Create(context.Background(), in, "doc-1")
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_InvalidEndTime(t *testing.T) {
	svc, _, _ := newTestService()
	in := validCreateInput()
	bad := "25:99"
	in.EndTime = &bad
	_, err := svc.Create(context.Background(), in, "doc-1")
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_UnknownClinician(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), validCreateInput(), "ghost")
	if CodeOf(err) != CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreate_HospitalMismatch(t *testing.T) {
	svc, _, gw := newTestService()
	gw.clinicians["doc-2"] = &ClinicianInfo{
		ID: uuid.New(), UserID: "doc-2", Hospital: "north-campus",
	}
	_, err := svc.Create(context.Background(), validCreateInput(), "doc-2")
	if CodeOf(err) != CodeScopeMismatch {
		t.Fatalf("expected scope mismatch error, got %v", err)
	}
}

func TestCreate_DuplicateOpenSlot(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), validCreateInput(), "doc-1"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), validCreateInput(), "doc-1")
	if CodeOf(err) != CodeDuplicate {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCreate_SameSlotAfterFinalize(t *testing.T) {
	svc, _, gw := newTestService()
	h, err := svc.Create(context.Background(), validCreateInput(), "doc-1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	pid := addPatient(gw, "12A")
	ids := []uuid.UUID{pid}
	if _, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := svc.Finalize(context.Background(), h.ID); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	// The slot is free again once the previous handover is finalized.
	if _, err := svc.Create(context.Background(), validCreateInput(), "doc-1"); err != nil {
		t.Fatalf("expected create to succeed after finalize, got %v", err)
	}
}

// -- Update --

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Update(context.Background(), uuid.New(), UpdatePatch{})
	if CodeOf(err) != CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdate_AutoPromotion(t *testing.T) {
	svc, _, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{addPatient(gw, "3B")}
	updated, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Errorf("expected in_progress after adding patients, got %q", updated.Status)
	}
}

func TestUpdate_EmptyPatientListStaysDraft(t *testing.T) {
	svc, _, _ := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{}
	updated, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusDraft {
		t.Errorf("expected draft, got %q", updated.Status)
	}
}

func TestUpdate_PromotionNeverReverts(t *testing.T) {
	svc, _, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{addPatient(gw, "3B")}
	if _, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := []uuid.UUID{}
	updated, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Errorf("expected status to stay in_progress, got %q", updated.Status)
	}
}

func TestUpdate_PartialPatchLeavesOtherFields(t *testing.T) {
	svc, _, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{addPatient(gw, "3B")}
	notes := "ward round at 9"
	if _, err := svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids, GeneralNotes: &notes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := []ChecklistItem{{Description: "check labs"}}
	updated, err := svc.Update(context.Background(), h.ID, UpdatePatch{ChecklistItems: &items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.IncludedPatientIDs) != 1 {
		t.Error("expected patient list to survive unrelated patch")
	}
	if updated.GeneralNotes == nil || *updated.GeneralNotes != notes {
		t.Error("expected general notes to survive unrelated patch")
	}
	if len(updated.ChecklistItems) != 1 {
		t.Error("expected checklist to be applied")
	}
}

func TestUpdate_FinalizedIsImmutable(t *testing.T) {
	svc, _, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{addPatient(gw, "3B")}
	svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})
	if _, err := svc.Finalize(context.Background(), h.ID); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	notes := "late edit"
	_, err := svc.Update(context.Background(), h.ID, UpdatePatch{GeneralNotes: &notes})
	if CodeOf(err) != CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

// -- Finalize --

func TestFinalize_Success(t *testing.T) {
	svc, repo, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	pid := addPatient(gw, "12A")
	ids := []uuid.UUID{pid}
	svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})

	final, err := svc.Finalize(context.Background(), h.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Status != StatusFinalized {
		t.Errorf("expected finalized status, got %q", final.Status)
	}
	if final.GeneratedSummary == nil || *final.GeneratedSummary == "" {
		t.Error("expected generated summary")
	}
	if final.FinalizedAt == nil || !final.FinalizedAt.Equal(testNow) {
		t.Errorf("expected finalizedAt %v, got %v", testNow, final.FinalizedAt)
	}
	if final.Version != 1 {
		t.Errorf("expected version 1 after finalize, got %d", final.Version)
	}

	stored, _ := repo.GetByID(context.Background(), h.ID)
	if stored.Status != StatusFinalized {
		t.Error("expected stored record to be finalized")
	}
}

func TestFinalize_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Finalize(context.Background(), uuid.New())
	if CodeOf(err) != CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFinalize_EmptyPatientsRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	_, err := svc.Finalize(context.Background(), h.ID)
	if CodeOf(err) != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), h.ID)
	if stored.Status != StatusDraft {
		t.Errorf("expected status untouched after rejected finalize, got %q", stored.Status)
	}
}

func TestFinalize_TwiceFails(t *testing.T) {
	svc, repo, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	ids := []uuid.UUID{addPatient(gw, "12A")}
	svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})

	first, err := svc.Finalize(context.Background(), h.ID)
	if err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}

	_, err = svc.Finalize(context.Background(), h.ID)
	if CodeOf(err) != CodeInvalidState {
		t.Fatalf("expected invalid state on second finalize, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), h.ID)
	if *stored.GeneratedSummary != *first.GeneratedSummary {
		t.Error("expected summary unchanged by second finalize")
	}
	if stored.Version != 1 {
		t.Errorf("expected version still 1, got %d", stored.Version)
	}
}

func TestFinalize_FlagsCriticalPatients(t *testing.T) {
	svc, _, gw := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")

	pid := addPatient(gw, "12A")
	gw.openTasks[pid] = []*TaskInfo{
		{ID: uuid.New(), PatientID: &pid, Hospital: "general", Title: "recheck potassium",
			Status: "pending", Priority: PriorityUrgent},
	}
	ids := []uuid.UUID{pid}
	svc.Update(context.Background(), h.ID, UpdatePatch{IncludedPatientIDs: &ids})

	final, err := svc.Finalize(context.Background(), h.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(final.CriticalPatients) != 1 {
		t.Fatalf("expected 1 critical patient, got %d", len(final.CriticalPatients))
	}
	if final.CriticalPatients[0].UrgentTasksCount != 1 {
		t.Errorf("expected urgent count 1, got %d", final.CriticalPatients[0].UrgentTasksCount)
	}
}

// -- Get --

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Get(context.Background(), uuid.New())
	if CodeOf(err) != CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	svc, _, _ := newTestService()
	h, _ := svc.Create(context.Background(), validCreateInput(), "doc-1")
	got, err := svc.Get(context.Background(), h.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("ID mismatch: expected %v, got %v", h.ID, got.ID)
	}
}
