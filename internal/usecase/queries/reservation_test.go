//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain/reservation"
	"bookhub/internal/infra"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubReservationViewRepo struct {
	view       *queries.ReservationView
	items      []*queries.ReservationListItem
	countAhead int32
	err        error
}

func (s *stubReservationViewRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.ReservationView, error) {
	return s.view, s.err
}

func (s *stubReservationViewRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.ReservationListItem, error) {
	return s.items, s.err
}

func (s *stubReservationViewRepo) FindQueueByBookID(_ context.Context, _ uuid.UUID, _ time.Time) ([]*queries.ReservationListItem, error) {
	return s.items, s.err
}

func (s *stubReservationViewRepo) CountAhead(_ context.Context, _ uuid.UUID, _ time.Time) (int32, error) {
	return s.countAhead, s.err
}

func (s *stubReservationViewRepo) FindActiveExpiringBetween(_ context.Context, _, _ time.Time) ([]*queries.ReservationListItem, error) {
	return s.items, s.err
}

func TestReservationQueriesGetByID(t *testing.T) {
	ctx := context.Background()

	baseView := func(status string, expiry time.Time) *queries.ReservationView {
		return &queries.ReservationView{
			ID:              uuid.New(),
			BookID:          uuid.New(),
			BookTitle:       "Clean Architecture",
			UserID:          uuid.New(),
			UserEmail:       "member@example.com",
			ReservationDate: queryNow.Add(-24 * time.Hour),
			ExpiryDate:      expiry,
			Status:          status,
		}
	}

	t.Run("waiting hold carries its queue position", func(t *testing.T) {
		view := baseView(reservation.StatusActive.String(), queryNow.Add(24*time.Hour))
		repo := &stubReservationViewRepo{view: view, countAhead: 2}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		got, err := q.GetByID(ctx, view.ID)
		require.NoError(t, err)

		want := *view
		pos := int32(2)
		want.QueuePosition = &pos
		if diff := cmp.Diff(&want, got); diff != "" {
			t.Errorf("ReservationView mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("expiry folds into the reported status", func(t *testing.T) {
		view := baseView(reservation.StatusActive.String(), queryNow.Add(-1*time.Hour))
		repo := &stubReservationViewRepo{view: view}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		got, err := q.GetByID(ctx, view.ID)
		require.NoError(t, err)
		require.Equal(t, reservation.StatusExpired.String(), got.Status)
		require.Nil(t, got.QueuePosition, "expired holds have no place in the queue")
	})

	t.Run("READY holds do not expire lazily", func(t *testing.T) {
		view := baseView(reservation.StatusReady.String(), queryNow.Add(-1*time.Hour))
		repo := &stubReservationViewRepo{view: view}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		got, err := q.GetByID(ctx, view.ID)
		require.NoError(t, err)
		require.Equal(t, reservation.StatusReady.String(), got.Status)
	})

	t.Run("missing reservation is marked not found", func(t *testing.T) {
		repo := &stubReservationViewRepo{err: infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		_, err := q.GetByID(ctx, uuid.New())

		require.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestReservationQueriesQueuePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the zero-indexed rank", func(t *testing.T) {
		view := &queries.ReservationView{
			ID:         uuid.New(),
			Status:     reservation.StatusActive.String(),
			ExpiryDate: queryNow.Add(24 * time.Hour),
		}
		repo := &stubReservationViewRepo{view: view, countAhead: 0}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		pos, err := q.QueuePosition(ctx, view.ID)

		require.NoError(t, err)
		require.EqualValues(t, 0, pos)
	})

	t.Run("a lapsed hold has no position", func(t *testing.T) {
		view := &queries.ReservationView{
			ID:         uuid.New(),
			Status:     reservation.StatusActive.String(),
			ExpiryDate: queryNow.Add(-1 * time.Hour),
		}
		repo := &stubReservationViewRepo{view: view}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		_, err := q.QueuePosition(ctx, view.ID)

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
	})

	t.Run("fulfilled holds are out of the queue", func(t *testing.T) {
		view := &queries.ReservationView{
			ID:         uuid.New(),
			Status:     reservation.StatusFulfilled.String(),
			ExpiryDate: queryNow.Add(24 * time.Hour),
		}
		repo := &stubReservationViewRepo{view: view}
		q := queries.NewReservationQueries(repo, clock.NewMockClock(queryNow))

		_, err := q.QueuePosition(ctx, view.ID)

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
	})
}

func TestReservationQueriesListByUser(t *testing.T) {
	ctx := context.Background()

	items := []*queries.ReservationListItem{
		{ID: uuid.New(), Status: reservation.StatusActive.String(), ExpiryDate: queryNow.Add(-1 * time.Hour)},
		{ID: uuid.New(), Status: reservation.StatusActive.String(), ExpiryDate: queryNow.Add(24 * time.Hour)},
		{ID: uuid.New(), Status: reservation.StatusCancelled.String(), ExpiryDate: queryNow.Add(-1 * time.Hour)},
	}
	q := queries.NewReservationQueries(&stubReservationViewRepo{items: items}, clock.NewMockClock(queryNow))

	got, err := q.ListByUser(ctx, uuid.New())

	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, reservation.StatusExpired.String(), got[0].Status)
	require.Equal(t, reservation.StatusActive.String(), got[1].Status)
	require.Equal(t, reservation.StatusCancelled.String(), got[2].Status)
}
