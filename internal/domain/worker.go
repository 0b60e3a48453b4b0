package domain

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a social worker or volunteer who can be assigned cases.
type Worker struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
