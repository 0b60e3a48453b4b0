package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/envelope"
)

const workerNotFound = "worker not found"

type workerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`
}

type workerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListWorkers handles GET /api/workers.
func (s *Server) ListWorkers(w http.ResponseWriter, r *http.Request) {
	q := queryErrors{}
	page := q.pagination(r)
	if !q.ok(w, r) {
		return
	}

	items, total, err := s.workers.ListPaged(r.Context(), page)
	if err != nil {
		s.writeServiceError(w, r, err, workerNotFound)
		return
	}
	data := make([]workerResponse, len(items))
	for i, wk := range items {
		data[i] = workerToResponse(wk)
	}
	writeJSON(w, r, http.StatusOK, envelope.PagedSuccess(data, page.Page, page.PageSize, total, ""))
}

// GetWorker handles GET /api/workers/{id}.
func (s *Server) GetWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, workerNotFound)
	if !ok {
		return
	}
	wk, err := s.workers.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, workerNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(workerToResponse(wk), ""))
}

// CreateWorker handles POST /api/workers.
func (s *Server) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	created, err := s.workers.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		s.writeServiceError(w, r, err, workerNotFound)
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope.Success(workerToResponse(created), "worker created"))
}

// UpdateWorker handles PUT /api/workers/{id}.
func (s *Server) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, workerNotFound)
	if !ok {
		return
	}
	var req workerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	updated, err := s.workers.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeServiceError(w, r, err, workerNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(workerToResponse(updated), "worker updated"))
}

// DeleteWorker handles DELETE /api/workers/{id}.
// Answers 409 while cases are still assigned to the worker.
func (s *Server) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, workerNotFound)
	if !ok {
		return
	}
	if err := s.workers.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, workerNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success[any](nil, "worker deleted"))
}

func (req workerRequest) toDomain(id uuid.UUID) domain.Worker {
	return domain.Worker{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone}
}

func workerToResponse(wk domain.Worker) workerResponse {
	return workerResponse{
		ID:        wk.ID,
		Name:      wk.Name,
		Email:     wk.Email,
		Phone:     wk.Phone,
		CreatedAt: wk.CreatedAt,
		UpdatedAt: wk.UpdatedAt,
	}
}
