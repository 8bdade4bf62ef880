//go:build unit || e2e

package builder

import (
	"time"

	domloan "bookhub/internal/domain/loan"

	"github.com/google/uuid"
)

type LoanBuilder struct {
	ID           uuid.UUID
	BookID       uuid.UUID
	UserID       uuid.UUID
	LoanDate     time.Time
	DueDate      time.Time
	ReturnDate   *time.Time
	Notes        *string
	Status       domloan.Status
	RenewalCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewLoanBuilder() *LoanBuilder {
	now := time.Now()
	return &LoanBuilder{
		ID:        uuid.New(),
		BookID:    uuid.New(),
		UserID:    uuid.New(),
		LoanDate:  now,
		DueDate:   now.Add(14 * 24 * time.Hour),
		Status:    domloan.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *LoanBuilder) WithStatus(status domloan.Status) *LoanBuilder {
	b.Status = status
	return b
}

func (b *LoanBuilder) WithDueDate(due time.Time) *LoanBuilder {
	b.DueDate = due
	return b
}

func (b *LoanBuilder) WithRenewalCount(n int) *LoanBuilder {
	b.RenewalCount = n
	return b
}

func (b *LoanBuilder) WithBook(bookID uuid.UUID) *LoanBuilder {
	b.BookID = bookID
	return b
}

func (b *LoanBuilder) WithUser(userID uuid.UUID) *LoanBuilder {
	b.UserID = userID
	return b
}

func (b *LoanBuilder) With(mutate func(*LoanBuilder)) *LoanBuilder {
	mutate(b)
	return b
}

func (b *LoanBuilder) BuildDomain() (*domloan.Loan, error) {
	return domloan.NewLoan(b.BookID, b.UserID, b.LoanDate, b.DueDate)
}

func (b *LoanBuilder) BuildReconstructed() *domloan.Loan {
	return domloan.ReconstructLoan(
		b.ID, b.BookID, b.UserID,
		b.LoanDate, b.DueDate, b.ReturnDate, b.Notes,
		b.Status, b.RenewalCount,
		b.CreatedAt, b.UpdatedAt,
	)
}
