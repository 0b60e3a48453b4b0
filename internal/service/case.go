package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/repo"
)

// CaseService implements business logic for Case operations. It holds the
// workers repo because assignments are checked on write and resolved into
// CaseViews on read.
type CaseService struct {
	cases   repo.CaseRepo
	workers repo.WorkerRepo
}

// NewCaseService constructs a CaseService backed by the provided repos.
func NewCaseService(cases repo.CaseRepo, workers repo.WorkerRepo) *CaseService {
	return &CaseService{cases: cases, workers: workers}
}

// Create validates the case, defaults its status to open, checks the assigned
// worker exists, then persists. An unknown worker is a validation error.
func (s *CaseService) Create(ctx context.Context, c domain.Case) (domain.CaseView, error) {
	if c.Status == "" {
		c.Status = domain.CaseStatusOpen
	}
	if err := validateCase(c); err != nil {
		return domain.CaseView{}, err
	}
	worker, err := s.assignedWorker(ctx, c.WorkerID)
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.Create: %w", err)
	}
	result, err := s.cases.Create(ctx, c)
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.Create: %w", err)
	}
	return domain.CaseView{Case: result, Worker: worker}, nil
}

func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (domain.CaseView, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.GetByID: %w", err)
	}
	views, err := s.views(ctx, []domain.Case{c})
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.GetByID: %w", err)
	}
	return views[0], nil
}

// ListPaged returns one page of case views and the total match count.
// Workers for the whole page are fetched in a single batch lookup.
func (s *CaseService) ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.CaseView, int, error) {
	if f.Status != "" && !domain.IsValidCaseStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown case status %q", domain.ErrValidation, f.Status)
	}
	cases, total, err := s.cases.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CaseService.ListPaged: %w", err)
	}
	views, err := s.views(ctx, cases)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CaseService.ListPaged: %w", err)
	}
	return views, total, nil
}

// Update validates and persists changes to an existing case.
func (s *CaseService) Update(ctx context.Context, c domain.Case) (domain.CaseView, error) {
	if c.Status == "" {
		c.Status = domain.CaseStatusOpen
	}
	if err := validateCase(c); err != nil {
		return domain.CaseView{}, err
	}
	worker, err := s.assignedWorker(ctx, c.WorkerID)
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.Update: %w", err)
	}
	result, err := s.cases.Update(ctx, c)
	if err != nil {
		return domain.CaseView{}, fmt.Errorf("service.CaseService.Update: %w", err)
	}
	return domain.CaseView{Case: result, Worker: worker}, nil
}

func (s *CaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cases.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CaseService.Delete: %w", err)
	}
	return nil
}

// assignedWorker loads the worker referenced by id. A dangling reference is
// reported as domain.ErrValidation, not ErrNotFound, because the case itself exists.
func (s *CaseService) assignedWorker(ctx context.Context, id *uuid.UUID) (*domain.Worker, error) {
	if id == nil {
		return nil, nil
	}
	w, err := s.workers.GetByID(ctx, *id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: worker %s does not exist", domain.ErrValidation, id)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// views joins cases with their workers through one GetByIDs call.
// Always returns a non-nil slice.
func (s *CaseService) views(ctx context.Context, cases []domain.Case) ([]domain.CaseView, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, c := range cases {
		if c.WorkerID == nil {
			continue
		}
		if _, ok := seen[*c.WorkerID]; !ok {
			seen[*c.WorkerID] = struct{}{}
			ids = append(ids, *c.WorkerID)
		}
	}

	byID := make(map[uuid.UUID]domain.Worker, len(ids))
	if len(ids) > 0 {
		workers, err := s.workers.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, w := range workers {
			byID[w.ID] = w
		}
	}

	views := make([]domain.CaseView, 0, len(cases))
	for _, c := range cases {
		v := domain.CaseView{Case: c}
		if c.WorkerID != nil {
			if w, ok := byID[*c.WorkerID]; ok {
				v.Worker = &w
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func validateCase(c domain.Case) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !domain.IsValidCaseStatus(c.Status) {
		return fmt.Errorf("%w: unknown case status %q", domain.ErrValidation, c.Status)
	}
	return nil
}
