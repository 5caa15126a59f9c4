package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

var validGenders = map[string]bool{
	"male":    true,
	"female":  true,
	"other":   true,
	"unknown": true,
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	p.Active = true
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error) {
	return s.patients.GetByIDs(ctx, ids)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) ListPatientsByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.ListByHospital(ctx, hospital, limit, offset)
}
