package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/envelope"
)

// ErrorDetail is the error object carried by every failed envelope.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeFailure writes a failed envelope whose message mirrors the error detail.
func writeFailure(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	writeJSON(w, r, status, envelope.Failure[any](message, ErrorDetail{
		Code:    code,
		Message: message,
		Fields:  fields,
	}))
}

// writeServiceError maps a service error onto an HTTP failure.
// notFound is the message used for domain.ErrNotFound because the handler is
// the layer that knows what was being looked up.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, r, http.StatusNotFound, "not_found", notFound, nil)
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err), nil)
	case errors.Is(err, domain.ErrConflict):
		writeFailure(w, r, http.StatusConflict, "conflict", unwrapMessage(err), nil)
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeFailure(w, r, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ActivityService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrConflict} {
		marker := sentinel.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
