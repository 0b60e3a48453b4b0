package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case lifecycle values.
const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in-progress"
	CaseStatusClosed     = "closed"
)

// Case is a client case handled by the organisation.
// WorkerID is a plain reference; the assigned Worker is fetched explicitly
// by the service layer when a caller needs it.
type Case struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      string
	WorkerID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CaseFilter narrows a case listing. Zero values mean "no filter".
type CaseFilter struct {
	Status   string
	WorkerID *uuid.UUID
}

// CaseView pairs a case with its assigned worker, when one is assigned and
// still exists.
type CaseView struct {
	Case   Case
	Worker *Worker
}

// IsValidCaseStatus reports whether s is a known case lifecycle value.
func IsValidCaseStatus(s string) bool {
	switch s {
	case CaseStatusOpen, CaseStatusInProgress, CaseStatusClosed:
		return true
	}
	return false
}
