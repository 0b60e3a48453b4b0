package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/repo"
	"github.com/ngohub/casework/internal/service"
)

// ---- mock repos ------------------------------------------------------------

type mockActivityRepo struct {
	create    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listPaged func(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error)
	update    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockWorkerRepo struct {
	create    func(ctx context.Context, w domain.Worker) (domain.Worker, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Worker, error)
	getByIDs  func(ctx context.Context, ids []uuid.UUID) ([]domain.Worker, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error)
	update    func(ctx context.Context, w domain.Worker) (domain.Worker, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWorkerRepo) Create(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	return m.create(ctx, w)
}
func (m *mockWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	return m.getByID(ctx, id)
}
func (m *mockWorkerRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Worker, error) {
	return m.getByIDs(ctx, ids)
}
func (m *mockWorkerRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockWorkerRepo) Update(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	return m.update(ctx, w)
}
func (m *mockWorkerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.WorkerRepo = (*mockWorkerRepo)(nil)

type mockCaseRepo struct {
	create    func(ctx context.Context, c domain.Case) (domain.Case, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Case, error)
	listPaged func(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.Case, int, error)
	update    func(ctx context.Context, c domain.Case) (domain.Case, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCaseRepo) Create(ctx context.Context, c domain.Case) (domain.Case, error) {
	return m.create(ctx, c)
}
func (m *mockCaseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Case, error) {
	return m.getByID(ctx, id)
}
func (m *mockCaseRepo) ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.Case, int, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockCaseRepo) Update(ctx context.Context, c domain.Case) (domain.Case, error) {
	return m.update(ctx, c)
}
func (m *mockCaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.CaseRepo = (*mockCaseRepo)(nil)

// ---- mock cache ------------------------------------------------------------

// memCache is an in-memory ActivityCache that records invalidations.
type memCache struct {
	items       map[uuid.UUID]domain.Activity
	getErr      error
	invalidated []uuid.UUID
}

func newMemCache() *memCache {
	return &memCache{items: make(map[uuid.UUID]domain.Activity)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (domain.Activity, bool, error) {
	if c.getErr != nil {
		return domain.Activity{}, false, c.getErr
	}
	a, ok := c.items[id]
	return a, ok, nil
}
func (c *memCache) Set(_ context.Context, a domain.Activity) error {
	c.items[a.ID] = a
	return nil
}
func (c *memCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

var _ service.ActivityCache = (*memCache)(nil)
