package repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ngohub/casework/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListPaged returns one page of activities matching f, ordered by
	// start_date descending (undated last), plus the total match count.
	ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error)

	// Update overwrites the mutable fields of an existing activity.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// Delete removes an activity by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

const activityColumns = `id, name, location, description, start_date, end_date, signup_deadline,
	current_participants, max_participants, status, category, target_audience, created_at, updated_at`

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                   a.ID,
		"name":                 a.Name,
		"location":             a.Location,
		"description":          a.Description,
		"start_date":           a.StartDate, // nil becomes NULL
		"end_date":             a.EndDate,
		"signup_deadline":      a.SignupDeadline,
		"current_participants": a.CurrentParticipants,
		"max_participants":     a.MaxParticipants,
		"status":               a.Status,
		"category":             a.Category,
		"target_audience":      a.TargetAudience,
	}
}

// Create inserts a new activity row and returns the full persisted record.
func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (name, location, description, start_date, end_date, signup_deadline,
		                        current_participants, max_participants, status, category, target_audience)
		VALUES (@name, @location, @description, @start_date, @end_date, @signup_deadline,
		        @current_participants, @max_participants, @status, @category, @target_audience)
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an activity by primary key.
func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	q := `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of activities and the total number of matches.
func (r *pgActivityRepo) ListPaged(ctx context.Context, f domain.ActivityFilter, p domain.PaginationParams) ([]domain.Activity, int, error) {
	where := activityWhere(f)

	total, err := count(ctx, r.db, psql.Select("count(*)").From("activities").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: count: %w", err)
	}

	q, args, err := psql.Select(activityColumns).
		From("activities").
		Where(where).
		OrderBy("start_date DESC NULLS LAST", "created_at DESC").
		Limit(uint64(p.PageSize)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ActivityRepo.ListPaged: rows: %w", err)
	}
	return out, total, nil
}

// activityWhere translates a filter into a squirrel predicate. An empty
// filter yields an always-true conjunction.
func activityWhere(f domain.ActivityFilter) sq.And {
	where := sq.And{}
	if f.Category != "" {
		where = append(where, sq.Eq{"category": f.Category})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": f.Status})
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		where = append(where, sq.Or{sq.ILike{"name": like}, sq.ILike{"location": like}})
	}
	return where
}

// Update overwrites the mutable fields of an activity and returns the updated record.
func (r *pgActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET name                 = @name,
		    location             = @location,
		    description          = @description,
		    start_date           = @start_date,
		    end_date             = @end_date,
		    signup_deadline      = @signup_deadline,
		    current_participants = @current_participants,
		    max_participants     = @max_participants,
		    status               = @status,
		    category             = @category,
		    target_audience      = @target_audience,
		    updated_at           = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity by primary key.
func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a                    domain.Activity
		id                   pgtype.UUID
		start, end, deadline pgtype.Date
		maxParticipants      pgtype.Int4
		current              int32
	)

	err := s.Scan(&id, &a.Name, &a.Location, &a.Description, &start, &end, &deadline,
		&current, &maxParticipants, &a.Status, &a.Category, &a.TargetAudience, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.StartDate = datePtr(start)
	a.EndDate = datePtr(end)
	a.SignupDeadline = datePtr(deadline)
	a.CurrentParticipants = int(current)
	if maxParticipants.Valid {
		m := int(maxParticipants.Int32)
		a.MaxParticipants = &m
	}
	return a, nil
}
