package shared

import (
	"github.com/google/uuid"
)

// UserSnapshot is the minimal borrower view commands need for policy checks.
type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}
