package queries

import (
	"context"
	"time"

	"bookhub/internal/domain/reservation"
	"bookhub/internal/infra"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	// QueueForBook lists the waiting reservations in pickup order.
	QueueForBook(ctx context.Context, bookID uuid.UUID) ([]*ReservationListItem, error)
	// QueuePosition is zero-indexed among non-expired active reservations for
	// the same book, ordered by (reservation_date, id).
	QueuePosition(ctx context.Context, id uuid.UUID) (int32, error)
	// ListExpiringSoon returns active reservations whose expiry falls inside
	// the window, for desk follow-up.
	ListExpiringSoon(ctx context.Context, window time.Duration) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	FindQueueByBookID(ctx context.Context, bookID uuid.UUID, now time.Time) ([]*ReservationListItem, error)
	CountAhead(ctx context.Context, id uuid.UUID, now time.Time) (int32, error)
	FindActiveExpiringBetween(ctx context.Context, from, to time.Time) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	clock clock.Clock
}

func NewReservationQueries(repo ReservationViewRepo, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, clock: clk}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	view.Status = effectiveStatus(view.Status, view.ExpiryDate, now)

	if view.Status == reservation.StatusActive.String() {
		pos, err := q.repo.CountAhead(ctx, id, now)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		view.QueuePosition = &pos
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	items, err := q.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	q.decorateItems(items)
	return items, nil
}

func (q *reservationQueriesImpl) QueueForBook(ctx context.Context, bookID uuid.UUID) ([]*ReservationListItem, error) {
	items, err := q.repo.FindQueueByBookID(ctx, bookID, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}

func (q *reservationQueriesImpl) QueuePosition(ctx context.Context, id uuid.UUID) (int32, error) {
	now := q.clock.Now()
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if effectiveStatus(view.Status, view.ExpiryDate, now) != reservation.StatusActive.String() {
		return 0, errs.Mark(errs.New("reservation is not waiting in the queue"), errs.ErrInvalidReservationState)
	}

	pos, err := q.repo.CountAhead(ctx, id, now)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return pos, nil
}

func (q *reservationQueriesImpl) ListExpiringSoon(ctx context.Context, window time.Duration) ([]*ReservationListItem, error) {
	now := q.clock.Now()
	items, err := q.repo.FindActiveExpiringBetween(ctx, now, now.Add(window))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}

func (q *reservationQueriesImpl) decorateItems(items []*ReservationListItem) {
	now := q.clock.Now()
	for _, item := range items {
		item.Status = effectiveStatus(item.Status, item.ExpiryDate, now)
	}
}

func effectiveStatus(status string, expiry, now time.Time) string {
	if status == reservation.StatusActive.String() && now.After(expiry) {
		return reservation.StatusExpired.String()
	}
	return status
}
