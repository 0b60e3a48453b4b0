package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/repo"
)

// WorkerService implements business logic for Worker operations.
type WorkerService struct {
	repo repo.WorkerRepo
}

// NewWorkerService constructs a WorkerService backed by the provided WorkerRepo.
func NewWorkerService(r repo.WorkerRepo) *WorkerService {
	return &WorkerService{repo: r}
}

func (s *WorkerService) Create(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	if err := validateWorker(w); err != nil {
		return domain.Worker{}, err
	}
	result, err := s.repo.Create(ctx, w)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("service.WorkerService.Create: %w", err)
	}
	return result, nil
}

func (s *WorkerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("service.WorkerService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged always returns a non-nil slice.
func (s *WorkerService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error) {
	items, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.WorkerService.ListPaged: %w", err)
	}
	if items == nil {
		items = []domain.Worker{}
	}
	return items, total, nil
}

func (s *WorkerService) Update(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	if err := validateWorker(w); err != nil {
		return domain.Worker{}, err
	}
	result, err := s.repo.Update(ctx, w)
	if err != nil {
		return domain.Worker{}, fmt.Errorf("service.WorkerService.Update: %w", err)
	}
	return result, nil
}

// Delete returns domain.ErrConflict while cases are still assigned to the worker.
func (s *WorkerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.WorkerService.Delete: %w", err)
	}
	return nil
}

func validateWorker(w domain.Worker) error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if w.Email != "" {
		if _, err := mail.ParseAddress(w.Email); err != nil {
			return fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
		}
	}
	return nil
}
