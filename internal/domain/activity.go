// Package domain contains the core data types and pure rules of the casework
// platform: activities and their derived status, cases, workers, categories,
// and pagination. It performs no I/O and is imported by every other internal
// package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a community activity run by the organisation.
// Date fields are calendar dates stored at midnight UTC; nil means "not set".
// MaxParticipants nil means the activity has no capacity limit.
type Activity struct {
	ID                  uuid.UUID
	Name                string
	Location            string
	Description         string
	StartDate           *time.Time
	EndDate             *time.Time
	SignupDeadline      *time.Time
	CurrentParticipants int
	MaxParticipants     *int
	Status              string // raw status as stored by an operator; "" when unset
	Category            string // "" when uncategorised
	TargetAudience      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ActivityFilter narrows an activity listing. Zero values mean "no filter".
type ActivityFilter struct {
	Category string
	Status   string
	// Query matches name or location case-insensitively.
	Query string
}

// Snapshot projects the record into the read-only input of ResolveStatus.
func (a Activity) Snapshot() ActivityStatusSnapshot {
	current := a.CurrentParticipants
	return ActivityStatusSnapshot{
		ActivityID:          a.ID,
		Name:                a.Name,
		Location:            a.Location,
		StartDate:           a.StartDate,
		EndDate:             a.EndDate,
		SignupDeadline:      a.SignupDeadline,
		CurrentParticipants: &current,
		MaxParticipants:     a.MaxParticipants,
		RawStatus:           a.Status,
		Category:            a.Category,
		TargetAudience:      a.TargetAudience,
	}
}
