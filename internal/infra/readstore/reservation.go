package readstore

import (
	"context"
	"time"

	"bookhub/internal/infra"
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT r.id, r.book_id, b.title, r.user_id, u.email,
		       r.reservation_date, COALESCE(r.expiry_date, 'epoch'::timestamptz),
		       r.status, r.created_at, r.updated_at
		FROM reservations r
		JOIN books b ON b.id = r.book_id
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`,
		id,
	)

	var v queries.ReservationView
	if err := row.Scan(
		&v.ID, &v.BookID, &v.BookTitle, &v.UserID, &v.UserEmail,
		&v.ReservationDate, &v.ExpiryDate,
		&v.Status, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, infra.ClassifyPgErr("failed to read reservation view", err)
	}
	return &v, nil
}

func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.book_id, b.title, r.user_id,
		       r.reservation_date, COALESCE(r.expiry_date, 'epoch'::timestamptz),
		       r.status, r.created_at
		FROM reservations r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id`,
		userID,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list reservations by user", err)
	}
	return collectReservationItems(rows)
}

// FindQueueByBookID lists the waiting queue in pickup order, skipping holds
// that already lapsed.
func (s *ReservationReadStore) FindQueueByBookID(ctx context.Context, bookID uuid.UUID, now time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.book_id, b.title, r.user_id,
		       r.reservation_date, r.expiry_date, r.status, r.created_at
		FROM reservations r
		JOIN books b ON b.id = r.book_id
		WHERE r.book_id = $1 AND r.status = 'ACTIVE' AND r.expiry_date > $2
		ORDER BY r.reservation_date, r.id`,
		bookID, now,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list reservation queue", err)
	}
	return collectReservationItems(rows)
}

// CountAhead is the zero-indexed queue position: how many non-expired active
// holds on the same book precede this one in (reservation_date, id) order.
func (s *ReservationReadStore) CountAhead(ctx context.Context, id uuid.UUID, now time.Time) (int32, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM reservations r
		JOIN reservations target ON target.id = $1
		WHERE r.book_id = target.book_id
		  AND r.status = 'ACTIVE'
		  AND r.expiry_date > $2
		  AND (r.reservation_date, r.id) < (target.reservation_date, target.id)`,
		id, now,
	)

	var count int32
	if err := row.Scan(&count); err != nil {
		return 0, infra.ClassifyPgErr("failed to count queue position", err)
	}
	return count, nil
}

func (s *ReservationReadStore) FindActiveExpiringBetween(ctx context.Context, from, to time.Time) ([]*queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.book_id, b.title, r.user_id,
		       r.reservation_date, r.expiry_date, r.status, r.created_at
		FROM reservations r
		JOIN books b ON b.id = r.book_id
		WHERE r.status = 'ACTIVE' AND r.expiry_date >= $1 AND r.expiry_date < $2
		ORDER BY r.expiry_date, r.id`,
		from, to,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list expiring reservations", err)
	}
	return collectReservationItems(rows)
}

func collectReservationItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID, &item.BookID, &item.BookTitle, &item.UserID,
			&item.ReservationDate, &item.ExpiryDate, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan reservation item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to iterate reservation items", err)
	}
	return items, nil
}
