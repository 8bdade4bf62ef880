package commands

import (
	"context"

	"bookhub/internal/domain/book"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidBookInput = errs.New("invalid book input")

type BookCommands interface {
	Create(ctx context.Context, isbn, title, author string, totalCopies int) (uuid.UUID, error)
	// Resize changes the total copy count; availability shifts by the same
	// delta under the book row lock. Added copies re-run the reservation
	// fulfillment check.
	Resize(ctx context.Context, bookID uuid.UUID, newTotal int) error
	SetStatus(ctx context.Context, bookID uuid.UUID, status string) error
	// Delete refuses while open loans or reservations still reference the
	// book.
	Delete(ctx context.Context, bookID uuid.UUID) error
}

type bookCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookCommands(uow shared.UnitOfWork, clk clock.Clock) BookCommands {
	return &bookCommandsImpl{uow: uow, clock: clk}
}

func (c *bookCommandsImpl) Create(ctx context.Context, isbn, title, author string, totalCopies int) (uuid.UUID, error) {
	b, err := book.NewBook(isbn, title, author, totalCopies)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidBookInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Books().Create(ctx, b); err != nil {
			return markConflictErr(err, ErrInvalidBookInput)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return b.ID(), nil
}

func (c *bookCommandsImpl) Resize(ctx context.Context, bookID uuid.UUID, newTotal int) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return err
		}
		prevAvailable := b.AvailableCopies()
		if err := b.Resize(newTotal); err != nil {
			return errs.Mark(err, ErrInvalidBookInput)
		}
		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if b.AvailableCopies() > prevAvailable {
			return promoteNextReservation(ctx, tx, b, c.clock.Now())
		}
		return nil
	})
}

func (c *bookCommandsImpl) SetStatus(ctx context.Context, bookID uuid.UUID, status string) error {
	newStatus, err := book.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidBookInput)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return err
		}
		wasAvailable := b.IsAvailable()
		if err := b.SetStatus(newStatus); err != nil {
			return errs.Mark(err, ErrInvalidBookInput)
		}
		if err := tx.Books().Save(ctx, b); err != nil {
			return wrapRepoErr(err)
		}
		if !wasAvailable && b.IsAvailable() {
			return promoteNextReservation(ctx, tx, b, c.clock.Now())
		}
		return nil
	})
}

func (c *bookCommandsImpl) Delete(ctx context.Context, bookID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBook(ctx, tx, bookID)
		if err != nil {
			return err
		}

		open, err := tx.Reads().BookHasOpenCommitments(ctx, b.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if open {
			return errs.Mark(errs.New("open loans or reservations exist"), errs.ErrBookStillReferenced)
		}

		if err := tx.Books().Delete(ctx, b.ID()); err != nil {
			return wrapRepoErr(err)
		}
		return nil
	})
}
