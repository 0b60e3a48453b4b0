// Package handler implements the HTTP handlers for the casework API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, activity.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/metrics"
)

// ActivityServicer defines the business operations the activity handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error)
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkerServicer defines the business operations the worker handlers depend on.
type WorkerServicer interface {
	Create(ctx context.Context, w domain.Worker) (domain.Worker, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error)
	Update(ctx context.Context, w domain.Worker) (domain.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CaseServicer defines the business operations the case handlers depend on.
type CaseServicer interface {
	Create(ctx context.Context, c domain.Case) (domain.CaseView, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.CaseView, error)
	ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.CaseView, int, error)
	Update(ctx context.Context, c domain.Case) (domain.CaseView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies shared by every handler.
// Wire it in main.go via NewRouter.
type Server struct {
	activities ActivityServicer
	workers    WorkerServicer
	cases      CaseServicer
	metrics    *metrics.Collectors
	log        *slog.Logger
	now        func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithClock replaces time.Now as the default reference date for derived
// activity statuses.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger used for unexpected errors. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer constructs the Server with all its dependencies. m may be nil.
func NewServer(activities ActivityServicer, workers WorkerServicer, cases CaseServicer, m *metrics.Collectors, opts ...Option) *Server {
	s := &Server{
		activities: activities,
		workers:    workers,
		cases:      cases,
		metrics:    m,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
