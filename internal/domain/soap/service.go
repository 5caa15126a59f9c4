package soap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	notes NoteRepository
}

func NewService(notes NoteRepository) *Service {
	return &Service{notes: notes}
}

func (s *Service) CreateNote(ctx context.Context, n *Note) error {
	if n.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if n.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if n.AuthorID == uuid.Nil {
		return fmt.Errorf("author_id is required")
	}
	if isEmpty(n.Subjective) && isEmpty(n.Objective) && isEmpty(n.Assessment) && isEmpty(n.Plan) {
		return fmt.Errorf("at least one SOAP section is required")
	}
	if n.O2Sat != nil && (*n.O2Sat < 0 || *n.O2Sat > 100) {
		return fmt.Errorf("o2_sat must be between 0 and 100")
	}
	return s.notes.Create(ctx, n)
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) ListNotesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	return s.notes.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) MostRecentNoteSince(ctx context.Context, patientID uuid.UUID, since time.Time) (*Note, error) {
	return s.notes.MostRecentSince(ctx, patientID, since)
}
