package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateLoanRequest issues a loan at the desk on a member's behalf. The due
// date is chosen by the librarian and must lie in the future.
type CreateLoanRequest struct {
	BookID  uuid.UUID `json:"book_id" binding:"required"`
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	DueDate time.Time `json:"due_date" binding:"required"`
}

// RequestLoanRequest is the member self-service flow; the borrower comes from
// the token.
type RequestLoanRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type ReturnLoanRequest struct {
	Notes *string `json:"notes,omitempty"`
}
