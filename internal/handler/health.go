package handler

import (
	"net/http"

	"github.com/ngohub/casework/internal/domain"
	"github.com/ngohub/casework/internal/envelope"
)

type healthStatus struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with an envelope around {"status":"ok"} while the process is serving.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, envelope.Success(healthStatus{Status: "ok"}, ""))
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, envelope.Success(domain.ListCategories(), ""))
}
