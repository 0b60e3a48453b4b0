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

// CaseRepo defines the persistence operations for Cases.
// Cases reference workers by ID only; resolving the worker is the caller's job.
type CaseRepo interface {
	Create(ctx context.Context, c domain.Case) (domain.Case, error)

	// GetByID returns domain.ErrNotFound if no case with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Case, error)

	// ListPaged returns one page of cases matching f, newest first, plus the total match count.
	ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.Case, int, error)

	Update(ctx context.Context, c domain.Case) (domain.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const caseColumns = `id, title, description, status, worker_id, created_at, updated_at`

type pgCaseRepo struct {
	db db
}

// NewCaseRepo constructs a CaseRepo backed by the provided db connection.
func NewCaseRepo(db db) CaseRepo {
	return &pgCaseRepo{db: db}
}

func caseArgs(c domain.Case) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
		"status":      c.Status,
		"worker_id":   c.WorkerID, // nil becomes NULL
	}
}

func (r *pgCaseRepo) Create(ctx context.Context, c domain.Case) (domain.Case, error) {
	const q = `
		INSERT INTO cases (title, description, status, worker_id)
		VALUES (@title, @description, @status, @worker_id)
		RETURNING ` + caseColumns

	result, err := scanCase(r.db.QueryRow(ctx, q, caseArgs(c)))
	if err != nil {
		return domain.Case{}, fmt.Errorf("repo.CaseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCaseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Case, error) {
	q := `SELECT ` + caseColumns + ` FROM cases WHERE id = @id`

	result, err := scanCase(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Case{}, fmt.Errorf("repo.CaseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCaseRepo) ListPaged(ctx context.Context, f domain.CaseFilter, p domain.PaginationParams) ([]domain.Case, int, error) {
	where := sq.And{}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": f.Status})
	}
	if f.WorkerID != nil {
		// pgtype.UUID keeps squirrel from expanding the [16]byte into an IN list.
		where = append(where, sq.Eq{"worker_id": pgtype.UUID{Bytes: *f.WorkerID, Valid: true}})
	}

	total, err := count(ctx, r.db, psql.Select("count(*)").From("cases").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CaseRepo.ListPaged: count: %w", err)
	}

	q, args, err := psql.Select(caseColumns).
		From("cases").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(p.PageSize)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CaseRepo.ListPaged: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CaseRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var out []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.CaseRepo.ListPaged: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CaseRepo.ListPaged: rows: %w", err)
	}
	return out, total, nil
}

func (r *pgCaseRepo) Update(ctx context.Context, c domain.Case) (domain.Case, error) {
	const q = `
		UPDATE cases
		SET title       = @title,
		    description = @description,
		    status      = @status,
		    worker_id   = @worker_id,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + caseColumns

	result, err := scanCase(r.db.QueryRow(ctx, q, caseArgs(c)))
	if err != nil {
		return domain.Case{}, fmt.Errorf("repo.CaseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cases WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CaseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CaseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCase(s scanner) (domain.Case, error) {
	var (
		c        domain.Case
		id       pgtype.UUID
		workerID pgtype.UUID
	)
	if err := s.Scan(&id, &c.Title, &c.Description, &c.Status, &workerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Case{}, domain.ErrNotFound
		}
		return domain.Case{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	if workerID.Valid {
		w := uuid.UUID(workerID.Bytes)
		c.WorkerID = &w
	}
	return c, nil
}
