package commands

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/policy"
	"bookhub/internal/infra"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoanCommands interface {
	// Create issues a loan directly at the desk; the copy leaves the shelf
	// immediately and comes due at the caller-chosen dueDate.
	Create(ctx context.Context, userID, bookID uuid.UUID, dueDate time.Time) (uuid.UUID, error)
	// Request records a member's borrowing request; no copy is committed
	// until a librarian approves.
	Request(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error)
	Approve(ctx context.Context, loanID uuid.UUID) error
	Reject(ctx context.Context, loanID uuid.UUID) error
	Renew(ctx context.Context, loanID uuid.UUID) error
	Return(ctx context.Context, loanID uuid.UUID, notes *string) error
	MarkLost(ctx context.Context, loanID uuid.UUID) error
	Delete(ctx context.Context, loanID uuid.UUID) error
}

type loanCommandsImpl struct {
	uow    shared.UnitOfWork
	policy *policy.Engine
	clock  clock.Clock
}

func NewLoanCommands(uow shared.UnitOfWork, engine *policy.Engine, clk clock.Clock) LoanCommands {
	return &loanCommandsImpl{
		uow:    uow,
		policy: engine,
		clock:  clk,
	}
}

func (c *loanCommandsImpl) Create(ctx context.Context, userID, bookID uuid.UUID, dueDate time.Time) (uuid.UUID, error) {
	var loanID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return err
		}

		borrower, err := loanBorrowerState(ctx, tx.Reads(), userID, bookID)
		if err != nil {
			return err
		}
		if err := c.policy.CanLoan(b, borrower); err != nil {
			return markPolicyErr(err)
		}

		l, err := loan.NewLoan(bookID, userID, c.clock.Now(), dueDate)
		if err != nil {
			return err
		}

		if err := b.BorrowCopy(); err != nil {
			return markInventoryErr(err)
		}
		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if err := tx.Loans().Create(ctx, l); err != nil {
			return markConflictErr(err, errs.ErrDuplicateActiveLoan)
		}

		loanID = l.ID()
		return nil
	})
	return loanID, err
}

func (c *loanCommandsImpl) Request(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error) {
	var loanID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBook(ctx, tx, bookID)
		if err != nil {
			return err
		}

		borrower, err := loanBorrowerState(ctx, tx.Reads(), userID, bookID)
		if err != nil {
			return err
		}
		if err := c.policy.CanLoan(b, borrower); err != nil {
			return markPolicyErr(err)
		}

		now := c.clock.Now()
		l, err := loan.NewLoanRequest(bookID, userID, now, now.Add(c.policy.LoanPeriod()))
		if err != nil {
			return err
		}
		if err := tx.Loans().Create(ctx, l); err != nil {
			return wrapRepoErr(err)
		}

		loanID = l.ID()
		return nil
	})
	return loanID, err
}

// Approve re-runs the policy at approval time; the shelf may have emptied
// while the request waited.
func (c *loanCommandsImpl) Approve(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}

		b, err := lockBook(ctx, tx, l.BookID())
		if err != nil {
			return err
		}

		borrower, err := loanBorrowerState(ctx, tx.Reads(), l.UserID(), l.BookID())
		if err != nil {
			return err
		}
		if err := c.policy.CanLoan(b, borrower); err != nil {
			return markPolicyErr(err)
		}

		if err := l.Approve(c.clock.Now(), c.policy.LoanPeriod()); err != nil {
			return errs.Mark(err, errs.ErrInvalidLoanState)
		}
		if err := b.BorrowCopy(); err != nil {
			return markInventoryErr(err)
		}

		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if err := tx.Loans().Save(ctx, l); err != nil {
			return markConflictErr(err, errs.ErrDuplicateActiveLoan)
		}
		return nil
	})
}

func (c *loanCommandsImpl) Reject(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if err := l.Reject(); err != nil {
			return errs.Mark(err, errs.ErrInvalidLoanState)
		}
		if err := tx.Loans().Save(ctx, l); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *loanCommandsImpl) Renew(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}

		if err := c.policy.CanRenew(l.Status(), l.RenewalCount()); err != nil {
			return markPolicyErr(err)
		}
		if err := l.Renew(c.policy.LoanPeriod()); err != nil {
			return errs.Mark(err, errs.ErrInvalidLoanState)
		}
		if err := tx.Loans().Save(ctx, l); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

// Return closes the loan, restocks the copy and promotes the earliest waiting
// reservation to READY, all in one transaction.
func (c *loanCommandsImpl) Return(ctx context.Context, loanID uuid.UUID, notes *string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}

		b, err := lockBook(ctx, tx, l.BookID())
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := l.Return(now, notes); err != nil {
			return errs.Mark(err, errs.ErrInvalidLoanState)
		}
		b.ReturnCopy()

		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if err := tx.Loans().Save(ctx, l); err != nil {
			return wrapRepoErr(err)
		}

		return promoteNextReservation(ctx, tx, b, now)
	})
}

func (c *loanCommandsImpl) MarkLost(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}

		b, err := lockBook(ctx, tx, l.BookID())
		if err != nil {
			return err
		}

		if err := l.MarkLost(); err != nil {
			return errs.Mark(err, errs.ErrInvalidLoanState)
		}
		b.WriteOff()

		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if err := tx.Loans().Save(ctx, l); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *loanCommandsImpl) Delete(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := findLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if !l.CanDelete() {
			return errs.Mark(errs.New("loan is still open"), errs.ErrInvalidLoanState)
		}
		if err := tx.Loans().Delete(ctx, l.ID()); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

// promoteNextReservation moves the earliest non-expired waiting reservation
// to READY after an availability increase. Caller holds the book row lock.
func promoteNextReservation(ctx context.Context, tx shared.Tx, b *book.Book, now time.Time) error {
	if !b.IsAvailable() {
		return nil
	}

	next, err := tx.Reservations().FindNextInQueue(ctx, b.ID(), now)
	if err != nil {
		return wrapRepoErr(err)
	}
	if next == nil {
		return nil
	}

	if err := next.MarkReady(); err != nil {
		return errs.Mark(err, errs.ErrInvalidReservationState)
	}
	if err := tx.Reservations().Save(ctx, next); err != nil {
		return wrapRepoErr(err)
	}
	return nil
}

func findLoan(ctx context.Context, tx shared.Tx, id uuid.UUID) (*loan.Loan, error) {
	l, err := tx.Loans().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrLoanNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return l, nil
}

func findBook(ctx context.Context, tx shared.Tx, id uuid.UUID) (*book.Book, error) {
	b, err := tx.Books().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func lockBook(ctx context.Context, tx shared.Tx, id uuid.UUID) (*book.Book, error) {
	b, err := tx.Books().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func loanBorrowerState(ctx context.Context, reads shared.CommandReads, userID, bookID uuid.UUID) (policy.BorrowerState, error) {
	var state policy.BorrowerState

	u, err := reads.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return state, errs.Mark(err, errs.ErrUserNotFound)
		}
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	state.IsActive = u.IsActive

	if state.ActiveLoanCount, err = reads.ActiveLoanCount(ctx, userID); err != nil {
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if state.HasActiveLoanOnBook, err = reads.HasActiveLoan(ctx, bookID, userID); err != nil {
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return state, nil
}

// markPolicyErr folds duplicate findings into the conflict sentinels; the
// remaining policy errors surface as business rule violations.
func markPolicyErr(err error) error {
	switch {
	case errors.Is(err, policy.ErrDuplicateLoan):
		return errs.Mark(err, errs.ErrDuplicateActiveLoan)
	case errors.Is(err, policy.ErrDuplicateReservation):
		return errs.Mark(err, errs.ErrDuplicateReservation)
	default:
		return err
	}
}

func markInventoryErr(err error) error {
	if errors.Is(err, book.ErrInventoryCorrupted) {
		return errs.Mark(err, errs.ErrInvariantViolation)
	}
	return err
}

// markConflictErr maps a unique index violation, the last line of defense
// under concurrency, to the given conflict sentinel.
func markConflictErr(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, sentinel)
	}
	return wrapRepoErr(err)
}

func wrapRepoErr(err error) error {
	if infra.IsKind(err, infra.KindInvariant) {
		return errs.Mark(err, errs.ErrInvariantViolation)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
