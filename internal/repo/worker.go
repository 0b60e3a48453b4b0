package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ngohub/casework/internal/domain"
)

// pgForeignKeyViolation is the SQLSTATE Postgres reports when a delete would
// orphan referencing rows.
const pgForeignKeyViolation = "23503"

// WorkerRepo defines the persistence operations for Workers.
type WorkerRepo interface {
	Create(ctx context.Context, w domain.Worker) (domain.Worker, error)

	// GetByID returns domain.ErrNotFound if no worker with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error)

	// GetByIDs returns the workers whose IDs are in ids, in no particular order.
	// Unknown IDs are silently absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Worker, error)

	// ListPaged returns one page of workers ordered by name, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error)

	Update(ctx context.Context, w domain.Worker) (domain.Worker, error)

	// Delete returns domain.ErrConflict while cases still reference the worker.
	Delete(ctx context.Context, id uuid.UUID) error
}

const workerColumns = `id, name, email, phone, created_at, updated_at`

type pgWorkerRepo struct {
	db db
}

// NewWorkerRepo constructs a WorkerRepo backed by the provided db connection.
func NewWorkerRepo(db db) WorkerRepo {
	return &pgWorkerRepo{db: db}
}

func (r *pgWorkerRepo) Create(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	const q = `
		INSERT INTO workers (name, email, phone)
		VALUES (@name, @email, @phone)
		RETURNING ` + workerColumns

	args := pgx.NamedArgs{"name": w.Name, "email": w.Email, "phone": w.Phone}
	result, err := scanWorker(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Worker{}, fmt.Errorf("repo.WorkerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Worker, error) {
	q := `SELECT ` + workerColumns + ` FROM workers WHERE id = @id`

	result, err := scanWorker(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Worker{}, fmt.Errorf("repo.WorkerRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgWorkerRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Worker, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT ` + workerColumns + ` FROM workers WHERE id = ANY(@ids::uuid[])`

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": strs})
	if err != nil {
		return nil, fmt.Errorf("repo.WorkerRepo.GetByIDs: %w", err)
	}
	return collectWorkers(rows, "repo.WorkerRepo.GetByIDs")
}

func (r *pgWorkerRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Worker, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM workers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.WorkerRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + workerColumns + ` FROM workers ORDER BY name, id LIMIT @limit OFFSET @offset`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.PageSize, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.WorkerRepo.ListPaged: %w", err)
	}
	workers, err := collectWorkers(rows, "repo.WorkerRepo.ListPaged")
	if err != nil {
		return nil, 0, err
	}
	return workers, total, nil
}

func (r *pgWorkerRepo) Update(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	const q = `
		UPDATE workers
		SET name       = @name,
		    email      = @email,
		    phone      = @phone,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + workerColumns

	args := pgx.NamedArgs{"id": w.ID, "name": w.Name, "email": w.Email, "phone": w.Phone}
	result, err := scanWorker(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Worker{}, fmt.Errorf("repo.WorkerRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgWorkerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workers WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("repo.WorkerRepo.Delete: %w: worker has assigned cases", domain.ErrConflict)
		}
		return fmt.Errorf("repo.WorkerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.WorkerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectWorkers(rows pgx.Rows, op string) ([]domain.Worker, error) {
	defer rows.Close()

	var out []domain.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

func scanWorker(s scanner) (domain.Worker, error) {
	var (
		w  domain.Worker
		id pgtype.UUID
	)
	if err := s.Scan(&id, &w.Name, &w.Email, &w.Phone, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Worker{}, domain.ErrNotFound
		}
		return domain.Worker{}, err
	}
	w.ID = uuid.UUID(id.Bytes)
	return w, nil
}
