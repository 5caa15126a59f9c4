package handover

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestHandover_IsOpen(t *testing.T) {
	cases := []struct {
		status Status
		open   bool
	}{
		{StatusDraft, true},
		{StatusInProgress, true},
		{StatusFinalized, false},
	}
	for _, c := range cases {
		h := &Handover{Status: c.status}
		if h.IsOpen() != c.open {
			t.Errorf("IsOpen() for %q: expected %v", c.status, c.open)
		}
	}
}

func TestError_CodeOf(t *testing.T) {
	err := validationError("bad input")
	if CodeOf(err) != CodeValidation {
		t.Errorf("expected %q, got %q", CodeValidation, CodeOf(err))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("expected empty code for foreign errors")
	}
}

func TestError_Is(t *testing.T) {
	err := duplicateError("slot taken")
	if !errors.Is(err, &Error{Code: CodeDuplicate}) {
		t.Error("expected errors.Is to match by code")
	}
	if errors.Is(err, &Error{Code: CodeNotFound}) {
		t.Error("expected errors.Is to reject a different code")
	}
}

func TestChecklistItem_JSONRoundTrip(t *testing.T) {
	item := ChecklistItem{Description: "confirm pending labs", IsCompleted: false}
	raw, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ChecklistItem
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Description != item.Description {
		t.Errorf("description mismatch: %q", back.Description)
	}
	if back.CompletedAt != nil || back.CompletedBy != nil {
		t.Error("expected optional completion fields to stay nil")
	}
}

func TestPatientInfo_FullName(t *testing.T) {
	p := &PatientInfo{FirstName: "Luis", LastName: "Gomez"}
	if p.FullName() != "Gomez, Luis" {
		t.Errorf("expected 'Gomez, Luis', got %q", p.FullName())
	}
}
