package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDueDate   = errors.New("due date must be after the loan date")
	ErrNotPending       = errors.New("loan is not pending")
	ErrNotActive        = errors.New("loan is not active")
	ErrNotDeletable     = errors.New("only returned or rejected loans can be deleted")
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrInvalidLoanState = errors.New("invalid loan state transition")
)

// Loan tracks one copy checked out (or requested) by one member. OVERDUE is
// never stored; it is derived from dueDate at read time.
type Loan struct {
	id           uuid.UUID
	bookID       uuid.UUID
	userID       uuid.UUID
	loanDate     time.Time
	dueDate      time.Time
	returnDate   *time.Time
	notes        *string
	status       Status
	renewalCount int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewLoan creates an immediately active loan, the desk-issued flow.
func NewLoan(bookID, userID uuid.UUID, loanDate, dueDate time.Time) (*Loan, error) {
	if !dueDate.After(loanDate) {
		return nil, ErrInvalidDueDate
	}
	return &Loan{
		id:       uuid.New(),
		bookID:   bookID,
		userID:   userID,
		loanDate: loanDate,
		dueDate:  dueDate,
		status:   StatusActive,
	}, nil
}

// NewLoanRequest creates a pending loan awaiting librarian approval. No copy
// is committed until approval.
func NewLoanRequest(bookID, userID uuid.UUID, requestedAt, dueDate time.Time) (*Loan, error) {
	if !dueDate.After(requestedAt) {
		return nil, ErrInvalidDueDate
	}
	return &Loan{
		id:       uuid.New(),
		bookID:   bookID,
		userID:   userID,
		loanDate: requestedAt,
		dueDate:  dueDate,
		status:   StatusPending,
	}, nil
}

// ReconstructLoan rebuilds a persisted loan without re-validating invariants.
func ReconstructLoan(
	id, bookID, userID uuid.UUID,
	loanDate, dueDate time.Time,
	returnDate *time.Time,
	notes *string,
	status Status,
	renewalCount int,
	createdAt, updatedAt time.Time,
) *Loan {
	return &Loan{
		id:           id,
		bookID:       bookID,
		userID:       userID,
		loanDate:     loanDate,
		dueDate:      dueDate,
		returnDate:   returnDate,
		notes:        notes,
		status:       status,
		renewalCount: renewalCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Approve activates a pending loan. The loan date moves to the approval time
// so the borrowing window starts when the copy actually leaves the shelf.
func (l *Loan) Approve(now time.Time, period time.Duration) error {
	if l.status != StatusPending {
		return ErrNotPending
	}
	l.status = StatusActive
	l.loanDate = now
	l.dueDate = now.Add(period)
	return nil
}

func (l *Loan) Reject() error {
	if l.status != StatusPending {
		return ErrNotPending
	}
	l.status = StatusRejected
	return nil
}

// Renew extends the due date by one loan period. Policy checks (renewal cap,
// renewals enabled) belong to the policy engine; only the state gate lives here.
func (l *Loan) Renew(period time.Duration) error {
	if l.status != StatusActive {
		return ErrNotActive
	}
	l.dueDate = l.dueDate.Add(period)
	l.renewalCount++
	return nil
}

func (l *Loan) Return(now time.Time, notes *string) error {
	if l.status == StatusReturned {
		return ErrAlreadyReturned
	}
	if l.status != StatusActive {
		return ErrNotActive
	}
	l.status = StatusReturned
	l.returnDate = &now
	if notes != nil {
		l.notes = notes
	}
	return nil
}

func (l *Loan) MarkLost() error {
	if l.status != StatusActive {
		return ErrNotActive
	}
	l.status = StatusLost
	return nil
}

func (l *Loan) CanDelete() bool {
	return l.status == StatusReturned || l.status == StatusRejected
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return l.status == StatusActive && now.After(l.dueDate)
}

func (l *Loan) DaysOverdue(now time.Time) int {
	if !l.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(l.dueDate).Hours() / 24)
}

func (l *Loan) ID() uuid.UUID          { return l.id }
func (l *Loan) BookID() uuid.UUID      { return l.bookID }
func (l *Loan) UserID() uuid.UUID      { return l.userID }
func (l *Loan) LoanDate() time.Time    { return l.loanDate }
func (l *Loan) DueDate() time.Time     { return l.dueDate }
func (l *Loan) ReturnDate() *time.Time { return l.returnDate }
func (l *Loan) Notes() *string         { return l.notes }
func (l *Loan) Status() Status         { return l.status }
func (l *Loan) RenewalCount() int      { return l.renewalCount }
func (l *Loan) CreatedAt() time.Time   { return l.createdAt }
func (l *Loan) UpdatedAt() time.Time   { return l.updatedAt }
