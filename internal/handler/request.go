package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ngohub/casework/internal/domain"
)

// validate checks request DTOs. Field names in errors are the JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.IsValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("activitystatus", func(fl validator.FieldLevel) bool {
		return domain.IsRecommendedStatus(fl.Field().String())
	})
	_ = v.RegisterValidation("casestatus", func(fl validator.FieldLevel) bool {
		return domain.IsValidCaseStatus(fl.Field().String())
	})
	return v
}

// fieldErrors turns validator output into a JSON-field → message map.
// It returns nil when err is not a validation failure.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "category":
		return "is not a known category"
	case "activitystatus", "casestatus":
		return "is not a known status"
	}
	return "is invalid"
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure it
// writes the response itself and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, r, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", nil)
			return false
		}
		writeFailure(w, r, http.StatusBadRequest, "invalid_body", "request body must be a valid JSON object", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeFailure(w, r, http.StatusUnprocessableEntity, "validation_error", "request validation failed", fieldErrors(err))
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. On failure it writes a 404, since no
// resource can have a malformed ID.
func pathID(w http.ResponseWriter, r *http.Request, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, http.StatusNotFound, "not_found", notFound, nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryErrors accumulates query parameter parse failures by name.
type queryErrors map[string]string

func (q queryErrors) intParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q[name] = "must be an integer"
		return nil
	}
	return &v
}

func (q queryErrors) uuidParam(r *http.Request, name string) *uuid.UUID {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		q[name] = "must be a UUID"
		return nil
	}
	return &v
}

// dateParam parses a YYYY-MM-DD parameter, falling back to def when absent.
func (q queryErrors) dateParam(r *http.Request, name string, def time.Time) time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := time.Parse(openapi_types.DateFormat, raw)
	if err != nil {
		q[name] = "must be a date in YYYY-MM-DD format"
		return def
	}
	return v
}

// pagination reads ?page and ?pageSize. Missing or non-positive values fall
// back to defaults; pageSize is capped.
func (q queryErrors) pagination(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(q.intParam(r, "page"), q.intParam(r, "pageSize"))
}

// ok writes a 422 listing every bad parameter and returns false if any were recorded.
func (q queryErrors) ok(w http.ResponseWriter, r *http.Request) bool {
	if len(q) == 0 {
		return true
	}
	writeFailure(w, r, http.StatusUnprocessableEntity, "validation_error", "invalid query parameters", q)
	return false
}

// dateToDomain and dateFromDomain convert between the wire date type and the
// domain's midnight-UTC *time.Time.
func dateToDomain(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func dateFromDomain(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
