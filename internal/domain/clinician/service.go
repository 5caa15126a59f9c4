package clinician

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	clinicians ClinicianRepository
}

func NewService(clinicians ClinicianRepository) *Service {
	return &Service{clinicians: clinicians}
}

var validRoles = map[string]bool{
	"admin":     true,
	"physician": true,
	"nurse":     true,
}

func (s *Service) CreateClinician(ctx context.Context, c *Clinician) error {
	if c.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if c.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if c.FirstName == "" || c.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if !validRoles[c.Role] {
		return fmt.Errorf("invalid role: %s", c.Role)
	}
	existing, err := s.clinicians.GetByUserID(ctx, c.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("clinician already registered for user %s", c.UserID)
	}
	c.Active = true
	return s.clinicians.Create(ctx, c)
}

func (s *Service) GetClinician(ctx context.Context, id uuid.UUID) (*Clinician, error) {
	return s.clinicians.GetByID(ctx, id)
}

func (s *Service) GetClinicianByUserID(ctx context.Context, userID string) (*Clinician, error) {
	return s.clinicians.GetByUserID(ctx, userID)
}

func (s *Service) UpdateClinician(ctx context.Context, c *Clinician) error {
	if c.FirstName == "" || c.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if !validRoles[c.Role] {
		return fmt.Errorf("invalid role: %s", c.Role)
	}
	return s.clinicians.Update(ctx, c)
}

func (s *Service) ListCliniciansByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Clinician, int, error) {
	return s.clinicians.ListByHospital(ctx, hospital, limit, offset)
}
