package readstore

import (
	"context"

	"bookhub/internal/infra"
	"bookhub/internal/infra/db"
	"bookhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads are the snapshot lookups write commands run before applying a
// policy decision. Handed a transaction they observe uncommitted state, so a
// check and the write it guards agree.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{dbtx: dbtx}
}

func (s *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT id, email, role, is_active FROM users WHERE id = $1`, id)

	var snap shared.UserSnapshot
	if err := row.Scan(&snap.ID, &snap.Email, &snap.Role, &snap.IsActive); err != nil {
		return nil, infra.ClassifyPgErr("failed to read user snapshot", err)
	}
	return &snap, nil
}

func (s *CommandReads) ActiveLoanCount(ctx context.Context, userID uuid.UUID) (int, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT count(*) FROM loans WHERE user_id = $1 AND status = 'ACTIVE'`, userID)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, infra.ClassifyPgErr("failed to count active loans", err)
	}
	return count, nil
}

func (s *CommandReads) HasActiveLoan(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM loans
			WHERE book_id = $1 AND user_id = $2 AND status = 'ACTIVE'
		)`, bookID, userID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, infra.ClassifyPgErr("failed to check active loan", err)
	}
	return exists, nil
}

func (s *CommandReads) ActiveReservationCount(ctx context.Context, userID uuid.UUID) (int, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT count(*) FROM reservations
		WHERE user_id = $1 AND status IN ('PENDING', 'ACTIVE', 'READY')`, userID)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, infra.ClassifyPgErr("failed to count active reservations", err)
	}
	return count, nil
}

func (s *CommandReads) HasOpenReservation(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE book_id = $1 AND user_id = $2 AND status IN ('PENDING', 'ACTIVE', 'READY')
		)`, bookID, userID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, infra.ClassifyPgErr("failed to check open reservation", err)
	}
	return exists, nil
}

func (s *CommandReads) BookHasOpenCommitments(ctx context.Context, bookID uuid.UUID) (bool, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM loans
			WHERE book_id = $1 AND status IN ('PENDING', 'ACTIVE')
		) OR EXISTS (
			SELECT 1 FROM reservations
			WHERE book_id = $1 AND status IN ('PENDING', 'ACTIVE', 'READY')
		)`, bookID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, infra.ClassifyPgErr("failed to check book commitments", err)
	}
	return exists, nil
}
