package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/envelope"
)

const caseNotFound = "case not found"

type caseRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,casestatus"`
	WorkerID    *uuid.UUID `json:"workerId"`
}

type caseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	WorkerID    *uuid.UUID      `json:"workerId"`
	Worker      *workerResponse `json:"worker"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ListCases handles GET /api/cases. Supports ?page, ?pageSize, ?status and ?workerId.
func (s *Server) ListCases(w http.ResponseWriter, r *http.Request) {
	q := queryErrors{}
	page := q.pagination(r)
	filter := domain.CaseFilter{
		Status:   r.URL.Query().Get("status"),
		WorkerID: q.uuidParam(r, "workerId"),
	}
	if filter.Status != "" && !domain.IsValidCaseStatus(filter.Status) {
		q["status"] = "is not a known status"
	}
	if !q.ok(w, r) {
		return
	}

	views, total, err := s.cases.ListPaged(r.Context(), filter, page)
	if err != nil {
		s.writeServiceError(w, r, err, caseNotFound)
		return
	}
	data := make([]caseResponse, len(views))
	for i, v := range views {
		data[i] = caseToResponse(v)
	}
	writeJSON(w, r, http.StatusOK, envelope.PagedSuccess(data, page.Page, page.PageSize, total, ""))
}

// GetCase handles GET /api/cases/{id}.
func (s *Server) GetCase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, caseNotFound)
	if !ok {
		return
	}
	v, err := s.cases.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, caseNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(caseToResponse(v), ""))
}

// CreateCase handles POST /api/cases.
func (s *Server) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req caseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := s.cases.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		s.writeServiceError(w, r, err, caseNotFound)
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope.Success(caseToResponse(v), "case created"))
}

// UpdateCase handles PUT /api/cases/{id}.
func (s *Server) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, caseNotFound)
	if !ok {
		return
	}
	var req caseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	v, err := s.cases.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeServiceError(w, r, err, caseNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(caseToResponse(v), "case updated"))
}

// DeleteCase handles DELETE /api/cases/{id}.
func (s *Server) DeleteCase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, caseNotFound)
	if !ok {
		return
	}
	if err := s.cases.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, caseNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success[any](nil, "case deleted"))
}

func (req caseRequest) toDomain(id uuid.UUID) domain.Case {
	return domain.Case{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		WorkerID:    req.WorkerID,
	}
}

func caseToResponse(v domain.CaseView) caseResponse {
	resp := caseResponse{
		ID:          v.Case.ID,
		Title:       v.Case.Title,
		Description: v.Case.Description,
		Status:      v.Case.Status,
		WorkerID:    v.Case.WorkerID,
		CreatedAt:   v.Case.CreatedAt,
		UpdatedAt:   v.Case.UpdatedAt,
	}
	if v.Worker != nil {
		wr := workerToResponse(*v.Worker)
		resp.Worker = &wr
	}
	return resp
}
