package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/guardia/guardia/internal/platform/clock"
)

type Service struct {
	tasks TaskRepository
	clk   clock.Clock
}

func NewService(tasks TaskRepository, clk clock.Clock) *Service {
	return &Service{tasks: tasks, clk: clk}
}

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

func (s *Service) CreateTask(ctx context.Context, t *Task) error {
	if t.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if !validStatuses[t.Status] {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !validPriorities[t.Priority] {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	return s.tasks.Create(ctx, t)
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Service) GetTasksByIDs(ctx context.Context, ids []uuid.UUID) ([]*Task, error) {
	return s.tasks.GetByIDs(ctx, ids)
}

func (s *Service) UpdateTask(ctx context.Context, t *Task) error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !validStatuses[t.Status] {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if !validPriorities[t.Priority] {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		now := s.clk.Now()
		t.CompletedAt = &now
	}
	return s.tasks.Update(ctx, t)
}

func (s *Service) ListOpenTasksByPatient(ctx context.Context, patientID uuid.UUID, hospital string) ([]*Task, error) {
	return s.tasks.ListOpenByPatient(ctx, patientID, hospital)
}

func (s *Service) ListTasksByHospital(ctx context.Context, hospital string, limit, offset int) ([]*Task, int, error) {
	return s.tasks.ListByHospital(ctx, hospital, limit, offset)
}
