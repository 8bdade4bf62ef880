package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookView represents read-optimized book data
type BookView struct {
	ID              uuid.UUID `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int32     `json:"total_copies"`
	AvailableCopies int32     `json:"available_copies"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoanView represents read-optimized loan data. IsOverdue and DaysOverdue are
// derived against the clock at query time, never stored.
type LoanView struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"book_id"`
	BookTitle    string     `json:"book_title"`
	UserID       uuid.UUID  `json:"user_id"`
	UserEmail    string     `json:"user_email"`
	LoanDate     time.Time  `json:"loan_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	Status       string     `json:"status"`
	RenewalCount int32      `json:"renewal_count"`
	IsOverdue    bool       `json:"is_overdue"`
	DaysOverdue  int32      `json:"days_overdue"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type LoanListItem struct {
	ID          uuid.UUID `json:"id"`
	BookID      uuid.UUID `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	UserID      uuid.UUID `json:"user_id"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	IsOverdue   bool      `json:"is_overdue"`
	DaysOverdue int32     `json:"days_overdue"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReservationView represents read-optimized reservation data. Status folds
// lazy expiry in; QueuePosition is derived from queue ordering, zero-indexed,
// and only present while the reservation is waiting.
type ReservationView struct {
	ID              uuid.UUID `json:"id"`
	BookID          uuid.UUID `json:"book_id"`
	BookTitle       string    `json:"book_title"`
	UserID          uuid.UUID `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	ReservationDate time.Time `json:"reservation_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	Status          string    `json:"status"`
	QueuePosition   *int32    `json:"queue_position,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID              uuid.UUID `json:"id"`
	BookID          uuid.UUID `json:"book_id"`
	BookTitle       string    `json:"book_title"`
	UserID          uuid.UUID `json:"user_id"`
	ReservationDate time.Time `json:"reservation_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
