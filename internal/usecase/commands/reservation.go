package commands

import (
	"context"

	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/policy"
	"bookhub/internal/domain/reservation"
	"bookhub/internal/infra"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationCommands interface {
	// Create places an active hold directly; inventory is untouched until
	// fulfillment.
	Create(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error)
	// Request records a member's hold request awaiting librarian approval.
	Request(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error)
	Approve(ctx context.Context, reservationID uuid.UUID) error
	// MarkReady flags the hold for pickup; the book must have a copy on the
	// shelf to hold.
	MarkReady(ctx context.Context, reservationID uuid.UUID) error
	// Fulfill hands the held copy over: the reservation closes and an active
	// loan for the same member opens in its place.
	Fulfill(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error)
	Cancel(ctx context.Context, reservationID uuid.UUID) error
	Delete(ctx context.Context, reservationID uuid.UUID) error
	// ExpireSweep persists EXPIRED for every active hold past its expiry
	// date. Reads already treat those as expired; the sweep is bookkeeping.
	ExpireSweep(ctx context.Context) (int64, error)
}

type reservationCommandsImpl struct {
	uow    shared.UnitOfWork
	policy *policy.Engine
	clock  clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, engine *policy.Engine, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:    uow,
		policy: engine,
		clock:  clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error) {
	var reservationID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBook(ctx, tx, bookID)
		if err != nil {
			return err
		}

		borrower, err := reservationBorrowerState(ctx, tx.Reads(), userID, bookID)
		if err != nil {
			return err
		}
		if err := c.policy.CanReserve(b.Status(), borrower); err != nil {
			return markPolicyErr(err)
		}

		r := reservation.NewReservation(bookID, userID, c.clock.Now(), c.policy.ReservationTTL())
		if err := tx.Reservations().Create(ctx, r); err != nil {
			return markConflictErr(err, errs.ErrDuplicateReservation)
		}

		reservationID = r.ID()
		return nil
	})
	return reservationID, err
}

func (c *reservationCommandsImpl) Request(ctx context.Context, userID, bookID uuid.UUID) (uuid.UUID, error) {
	var reservationID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := findBook(ctx, tx, bookID)
		if err != nil {
			return err
		}

		borrower, err := reservationBorrowerState(ctx, tx.Reads(), userID, bookID)
		if err != nil {
			return err
		}
		if err := c.policy.CanReserve(b.Status(), borrower); err != nil {
			return markPolicyErr(err)
		}

		r := reservation.NewReservationRequest(bookID, userID, c.clock.Now())
		if err := tx.Reservations().Create(ctx, r); err != nil {
			return markConflictErr(err, errs.ErrDuplicateReservation)
		}

		reservationID = r.ID()
		return nil
	})
	return reservationID, err
}

func (c *reservationCommandsImpl) Approve(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := r.Approve(c.clock.Now(), c.policy.ReservationTTL()); err != nil {
			return errs.Mark(err, errs.ErrInvalidReservationState)
		}
		if err := tx.Reservations().Save(ctx, r); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) MarkReady(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if r.HasExpired(c.clock.Now()) {
			return errs.Mark(errs.New("reservation has expired"), errs.ErrInvalidReservationState)
		}

		b, err := lockBook(ctx, tx, r.BookID())
		if err != nil {
			return err
		}
		if !b.IsAvailable() {
			return policy.ErrBookUnavailable
		}

		if err := r.MarkReady(); err != nil {
			return errs.Mark(err, errs.ErrInvalidReservationState)
		}
		if err := tx.Reservations().Save(ctx, r); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) Fulfill(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, error) {
	var loanID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		b, err := lockBook(ctx, tx, r.BookID())
		if err != nil {
			return err
		}

		borrower, err := loanBorrowerState(ctx, tx.Reads(), r.UserID(), r.BookID())
		if err != nil {
			return err
		}
		if err := c.policy.CanLoan(b, borrower); err != nil {
			return markPolicyErr(err)
		}

		if err := r.Fulfill(); err != nil {
			return errs.Mark(err, errs.ErrInvalidReservationState)
		}
		if err := b.BorrowCopy(); err != nil {
			return markInventoryErr(err)
		}

		now := c.clock.Now()
		l, err := loan.NewLoan(r.BookID(), r.UserID(), now, now.Add(c.policy.LoanPeriod()))
		if err != nil {
			return err
		}

		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if err := tx.Reservations().Save(ctx, r); err != nil {
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

func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := r.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidReservationState)
		}
		if err := tx.Reservations().Save(ctx, r); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) Delete(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := findReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !r.CanDelete() {
			return errs.Mark(errs.New("reservation is still open"), errs.ErrInvalidReservationState)
		}
		if err := tx.Reservations().Delete(ctx, r.ID()); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}

func (c *reservationCommandsImpl) ExpireSweep(ctx context.Context) (int64, error) {
	var expired int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reservations().ExpireActiveBefore(ctx, c.clock.Now())
		if err != nil {
			return wrapRepoErr(err)
		}
		expired = n
		return nil
	})
	return expired, err
}

func findReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}

func reservationBorrowerState(ctx context.Context, reads shared.CommandReads, userID, bookID uuid.UUID) (policy.BorrowerState, error) {
	var state policy.BorrowerState

	u, err := reads.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return state, errs.Mark(err, errs.ErrUserNotFound)
		}
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	state.IsActive = u.IsActive

	if state.ActiveReservationCount, err = reads.ActiveReservationCount(ctx, userID); err != nil {
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if state.HasOpenReservationOnBook, err = reads.HasOpenReservation(ctx, bookID, userID); err != nil {
		return state, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return state, nil
}
