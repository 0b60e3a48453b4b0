// Package service contains the business logic for the casework API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/repo"
)

const maxActivityNameLen = 200

// ActivityCache is the read-through cache the ActivityService consults before
// the repo. *cache.ActivityCache satisfies it.
type ActivityCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Activity, bool, error)
	Set(ctx context.Context, a domain.Activity) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ActivityService implements business logic for Activity operations.
// Derived status is computed by callers with domain.ResolveStatus; the
// service only stores and returns records.
type ActivityService struct {
	repo  repo.ActivityRepo
	cache ActivityCache
}

// NewActivityService constructs an ActivityService. c may be nil, in which
// case every read goes to the repo.
func NewActivityService(r repo.ActivityRepo, c ActivityCache) *ActivityService {
	return &ActivityService{repo: r, cache: c}
}

// Create validates and persists a new activity.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single activity, from the cache when possible.
// Cache failures fall back to the repo; they never fail the read.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	if s.cache != nil {
		if a, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return a, nil
		}
	}
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, result)
	}
	return result, nil
}

// ListPaged returns one page of activities and the total match count.
// An unknown category filter is a validation error rather than an empty page.
func (s *ActivityService) ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error) {
	if !domain.IsValidCategory(f.Category) {
		return nil, 0, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, f.Category)
	}
	if f.Status != "" && !domain.IsRecommendedStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	f.Query = strings.TrimSpace(f.Query)

	items, total, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ActivityService.ListPaged: %w", err)
	}
	if items == nil {
		items = []domain.Activity{}
	}
	return items, total, nil
}

// Update validates and persists changes to an existing activity, then drops
// any cached copy.
func (s *ActivityService) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.repo.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	s.invalidate(ctx, a.ID)
	return result, nil
}

// Delete removes an activity by ID.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ActivityService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}

// validateActivity enforces business rules common to both Create and Update.
// currentParticipants above maxParticipants is allowed; the resolver reports it as full.
func validateActivity(a domain.Activity) error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxActivityNameLen {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxActivityNameLen)
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	if a.SignupDeadline != nil && a.EndDate != nil && a.SignupDeadline.After(*a.EndDate) {
		return fmt.Errorf("%w: signupDeadline must not be after endDate", domain.ErrValidation)
	}
	if !domain.IsValidCategory(a.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, a.Category)
	}
	if a.Status != "" && !domain.IsRecommendedStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, a.Status)
	}
	if a.CurrentParticipants < 0 {
		return fmt.Errorf("%w: currentParticipants must not be negative", domain.ErrValidation)
	}
	if a.MaxParticipants != nil && *a.MaxParticipants < 1 {
		return fmt.Errorf("%w: maxParticipants must be at least 1", domain.ErrValidation)
	}
	return nil
}
