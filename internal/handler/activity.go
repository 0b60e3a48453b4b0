package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/envelope"
)

const activityNotFound = "activity not found"

type activityRequest struct {
	Name                string              `json:"name" validate:"required,max=200"`
	Location            string              `json:"location" validate:"max=200"`
	Description         string              `json:"description"`
	StartDate           *openapi_types.Date `json:"startDate"`
	EndDate             *openapi_types.Date `json:"endDate"`
	SignupDeadline      *openapi_types.Date `json:"signupDeadline"`
	CurrentParticipants int                 `json:"currentParticipants" validate:"gte=0"`
	MaxParticipants     *int                `json:"maxParticipants" validate:"omitempty,gte=1"`
	Status              string              `json:"status" validate:"omitempty,activitystatus"`
	Category            string              `json:"category" validate:"omitempty,category"`
	TargetAudience      string              `json:"targetAudience" validate:"max=200"`
}

type activityResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Location            string              `json:"location"`
	Description         string              `json:"description"`
	StartDate           *openapi_types.Date `json:"startDate"`
	EndDate             *openapi_types.Date `json:"endDate"`
	SignupDeadline      *openapi_types.Date `json:"signupDeadline"`
	CurrentParticipants int                 `json:"currentParticipants"`
	MaxParticipants     *int                `json:"maxParticipants"`
	Status              string              `json:"status"`
	Category            string              `json:"category"`
	CategoryLabel       string              `json:"categoryLabel"`
	TargetAudience      string              `json:"targetAudience"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// activityView is an activity record together with its status derived at the
// request's reference date.
type activityView struct {
	Activity      activityResponse     `json:"activity"`
	DerivedStatus domain.DerivedStatus `json:"derivedStatus"`
}

// ListActivities handles GET /api/activities.
// Supports ?page, ?pageSize, ?category, ?status, ?q and ?asOf.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	q := queryErrors{}
	page := q.pagination(r)
	asOf := q.dateParam(r, "asOf", s.now())
	filter := domain.ActivityFilter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		Query:    r.URL.Query().Get("q"),
	}
	if !domain.IsValidCategory(filter.Category) {
		q["category"] = "is not a known category"
	}
	if filter.Status != "" && !domain.IsRecommendedStatus(filter.Status) {
		q["status"] = "is not a known status"
	}
	if !q.ok(w, r) {
		return
	}

	items, total, err := s.activities.ListPaged(r.Context(), filter, page)
	if err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}

	views := make([]activityView, len(items))
	for i, a := range items {
		views[i] = s.activityView(a, asOf)
	}
	writeJSON(w, r, http.StatusOK, envelope.PagedSuccess(views, page.Page, page.PageSize, total, ""))
}

// GetActivity handles GET /api/activities/{id}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, activityNotFound)
	if !ok {
		return
	}
	q := queryErrors{}
	asOf := q.dateParam(r, "asOf", s.now())
	if !q.ok(w, r) {
		return
	}

	a, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(s.activityView(a, asOf), ""))
}

// GetActivityStatus handles GET /api/activities/{id}/status and returns only
// the derived status.
func (s *Server) GetActivityStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, activityNotFound)
	if !ok {
		return
	}
	q := queryErrors{}
	asOf := q.dateParam(r, "asOf", s.now())
	if !q.ok(w, r) {
		return
	}

	a, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(s.resolve(a, asOf), ""))
}

// CreateActivity handles POST /api/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := s.activities.Create(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope.Success(s.activityView(created, s.now()), "activity created"))
}

// UpdateActivity handles PUT /api/activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, activityNotFound)
	if !ok {
		return
	}
	var req activityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := s.activities.Update(r.Context(), req.toDomain(id))
	if err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success(s.activityView(updated, s.now()), "activity updated"))
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, activityNotFound)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, activityNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, envelope.Success[any](nil, "activity deleted"))
}

// resolve derives the status of a as of asOf and counts flagged discrepancies.
// The stored status is never modified here.
func (s *Server) resolve(a domain.Activity, asOf time.Time) domain.DerivedStatus {
	ds := domain.ResolveStatus(a.Snapshot(), asOf)
	if ds.NeedsReview && s.metrics != nil {
		s.metrics.StatusReviews.Inc()
	}
	return ds
}

func (s *Server) activityView(a domain.Activity, asOf time.Time) activityView {
	return activityView{
		Activity:      activityToResponse(a),
		DerivedStatus: s.resolve(a, asOf),
	}
}

// --- mapping helpers --------------------------------------------------------

func (req activityRequest) toDomain(id uuid.UUID) domain.Activity {
	return domain.Activity{
		ID:                  id,
		Name:                req.Name,
		Location:            req.Location,
		Description:         req.Description,
		StartDate:           dateToDomain(req.StartDate),
		EndDate:             dateToDomain(req.EndDate),
		SignupDeadline:      dateToDomain(req.SignupDeadline),
		CurrentParticipants: req.CurrentParticipants,
		MaxParticipants:     req.MaxParticipants,
		Status:              req.Status,
		Category:            req.Category,
		TargetAudience:      req.TargetAudience,
	}
}

func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Location:            a.Location,
		Description:         a.Description,
		StartDate:           dateFromDomain(a.StartDate),
		EndDate:             dateFromDomain(a.EndDate),
		SignupDeadline:      dateFromDomain(a.SignupDeadline),
		CurrentParticipants: a.CurrentParticipants,
		MaxParticipants:     a.MaxParticipants,
		Status:              a.Status,
		Category:            a.Category,
		CategoryLabel:       domain.CategoryLabel(a.Category),
		TargetAudience:      a.TargetAudience,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}
