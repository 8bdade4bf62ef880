package repository

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/domain/reservation"
	"bookhub/internal/infra"
	"bookhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, book_id, user_id, reservation_date, expiry_date, status, created_at, updated_at`

type ReservationRepository struct {
	dbtx db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{dbtx: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO reservations (id, book_id, user_id, reservation_date, expiry_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		res.ID(), res.BookID(), res.UserID(), res.ReservationDate(), expiryParam(res), res.Status().String(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to insert reservation", err)
	}
	return nil
}

// expiryParam binds NULL for reservations that have no pickup window yet.
// Pending requests only get an expiry date at approval.
func expiryParam(res *reservation.Reservation) *time.Time {
	if e := res.ExpiryDate(); !e.IsZero() {
		return &e
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE reservations
		SET reservation_date = $2, expiry_date = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.ReservationDate(), expiryParam(res), res.Status().String(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found for update", nil)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.ClassifyPgErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found for delete", nil)
	}
	return nil
}

// FindNextInQueue returns the earliest non-expired waiting reservation for
// the book, or nil when the queue is empty. (reservation_date, id) is the
// queue order; id breaks same-instant ties deterministically.
func (r *ReservationRepository) FindNextInQueue(ctx context.Context, bookID uuid.UUID, now time.Time) (*reservation.Reservation, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE book_id = $1 AND status = 'ACTIVE' AND expiry_date > $2
		ORDER BY reservation_date, id
		LIMIT 1`,
		bookID, now,
	)
	res, err := scanReservation(row)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepository) ExpireActiveBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE reservations
		SET status = 'EXPIRED', updated_at = now()
		WHERE status = 'ACTIVE' AND expiry_date < $1`,
		now,
	)
	if err != nil {
		return 0, infra.ClassifyPgErr("failed to expire reservations", err)
	}
	return tag.RowsAffected(), nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, bookID, userID   uuid.UUID
		reservationDate      time.Time
		expiryDate           *time.Time
		status               string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &bookID, &userID, &reservationDate, &expiryDate, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.ClassifyPgErr("failed to scan reservation", err)
	}

	// Pending requests have no expiry yet; the column is nullable.
	var expiry time.Time
	if expiryDate != nil {
		expiry = *expiryDate
	}
	return reservation.ReconstructReservation(
		id, bookID, userID,
		reservationDate, expiry, reservation.Status(status),
		createdAt, updatedAt,
	), nil
}
