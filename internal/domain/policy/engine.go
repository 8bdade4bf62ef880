package policy

import (
	"errors"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
)

var (
	ErrUserNotEligible      = errors.New("user is not eligible to borrow")
	ErrBookUnavailable      = errors.New("book is not available")
	ErrDuplicateLoan        = errors.New("user already has an active loan for this book")
	ErrDuplicateReservation = errors.New("user already has an open reservation for this book")
	ErrLoanLimitReached     = errors.New("active loan limit reached")
	ErrReservationLimit     = errors.New("active reservation limit reached")
	ErrRenewalNotAllowed    = errors.New("renewal not allowed")
)

// Limits are the configured lending rules. They come from env config so the
// library can tighten or relax them without a rebuild.
type Limits struct {
	MaxActiveLoans        int
	MaxActiveReservations int
	MaxRenewals           int
	RenewalsAllowed       bool
	LoanPeriodDays        int
	ReservationExpiryDays int
}

// BorrowerState is a snapshot of one member's standing, assembled by the
// caller inside the same transaction that will apply the decision.
type BorrowerState struct {
	IsActive                 bool
	ActiveLoanCount          int
	HasActiveLoanOnBook      bool
	ActiveReservationCount   int
	HasOpenReservationOnBook bool
}

// Engine applies the lending rules. It is stateless; every decision is a pure
// function of the limits and the snapshots handed to it.
type Engine struct {
	limits Limits
}

func NewEngine(limits Limits) *Engine {
	return &Engine{limits: limits}
}

func (e *Engine) CanLoan(b *book.Book, borrower BorrowerState) error {
	if !borrower.IsActive {
		return ErrUserNotEligible
	}
	if !b.IsAvailable() {
		return ErrBookUnavailable
	}
	if borrower.HasActiveLoanOnBook {
		return ErrDuplicateLoan
	}
	if borrower.ActiveLoanCount >= e.limits.MaxActiveLoans {
		return ErrLoanLimitReached
	}
	return nil
}

// CanReserve allows holds on checked-out titles; only books pulled from
// circulation entirely are unreservable.
func (e *Engine) CanReserve(status book.Status, borrower BorrowerState) error {
	if !borrower.IsActive {
		return ErrUserNotEligible
	}
	if !status.Lendable() {
		return ErrBookUnavailable
	}
	if borrower.HasOpenReservationOnBook {
		return ErrDuplicateReservation
	}
	if borrower.ActiveReservationCount >= e.limits.MaxActiveReservations {
		return ErrReservationLimit
	}
	return nil
}

func (e *Engine) CanRenew(status loan.Status, renewalCount int) error {
	if !e.limits.RenewalsAllowed {
		return ErrRenewalNotAllowed
	}
	if status != loan.StatusActive {
		return ErrRenewalNotAllowed
	}
	if renewalCount >= e.limits.MaxRenewals {
		return ErrRenewalNotAllowed
	}
	return nil
}

func (e *Engine) LoanPeriod() time.Duration {
	return time.Duration(e.limits.LoanPeriodDays) * 24 * time.Hour
}

func (e *Engine) ReservationTTL() time.Duration {
	return time.Duration(e.limits.ReservationExpiryDays) * 24 * time.Hour
}

func (e *Engine) Limits() Limits {
	return e.limits
}
