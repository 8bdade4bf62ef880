//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/policy"
	"bookhub/internal/domain/reservation"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/commands"
	"bookhub/tests/common/builder"

	"github.com/stretchr/testify/require"
)

func newReservationFixture() (*fakeState, commands.ReservationCommands, *clock.MockClock) {
	state := newFakeState()
	clk := clock.NewMockClock(testNow)
	cmd := commands.NewReservationCommands(newFakeUoW(state), policy.NewEngine(testLimits()), clk)
	return state, cmd, clk
}

func TestReservationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("places an active hold without touching inventory", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := builder.NewBookBuilder().
			WithCopies(1, 0).
			WithStatus(book.StatusBorrowed).
			BuildReconstructed()
		state.putBook(b)

		id, err := cmd.Create(ctx, u.ID, b.ID())

		require.NoError(t, err)
		created := state.reservation(id)
		require.Equal(t, reservation.StatusActive, created.Status())
		require.Equal(t, testNow.Add(7*24*time.Hour), created.ExpiryDate())
		require.Equal(t, 0, state.book(b.ID()).AvailableCopies())
	})

	t.Run("duplicate open reservation is rejected", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := seedBook(state, 2, 2)
		_, err := cmd.Create(ctx, u.ID, b.ID())
		require.NoError(t, err)

		_, err = cmd.Create(ctx, u.ID, b.ID())

		require.ErrorIs(t, err, errs.ErrDuplicateReservation)
	})

	t.Run("reservation limit reached", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := seedBook(state, 2, 2)
		for range 3 {
			r := builder.NewReservationBuilder().WithUser(u.ID).BuildReconstructed()
			state.putReservation(r)
		}

		_, err := cmd.Create(ctx, u.ID, b.ID())

		require.ErrorIs(t, err, policy.ErrReservationLimit)
	})

	t.Run("books out of circulation are unreservable", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := builder.NewBookBuilder().
			WithStatus(book.StatusUnderMaintenance).
			BuildReconstructed()
		state.putBook(b)

		_, err := cmd.Create(ctx, u.ID, b.ID())

		require.ErrorIs(t, err, policy.ErrBookUnavailable)
	})
}

func TestReservationRequestAndApprove(t *testing.T) {
	ctx := context.Background()
	state, cmd, clk := newReservationFixture()
	u := activeMember()
	state.putUser(u)
	b := seedBook(state, 2, 2)

	id, err := cmd.Request(ctx, u.ID, b.ID())
	require.NoError(t, err)
	require.Equal(t, reservation.StatusPending, state.reservation(id).Status())

	clk.Add(72 * time.Hour)
	require.NoError(t, cmd.Approve(ctx, id))

	approved := state.reservation(id)
	require.Equal(t, reservation.StatusActive, approved.Status())
	// The queue clock restarts at approval, so the wait does not count twice.
	require.Equal(t, testNow.Add(72*time.Hour), approved.ReservationDate())
	require.Equal(t, testNow.Add(72*time.Hour).Add(7*24*time.Hour), approved.ExpiryDate())
}

func TestReservationMarkReady(t *testing.T) {
	ctx := context.Background()

	t.Run("flags the hold for pickup", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		b := seedBook(state, 2, 1)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithExpiryDate(testNow.Add(24 * time.Hour)).
			BuildReconstructed()
		state.putReservation(r)

		require.NoError(t, cmd.MarkReady(ctx, r.ID()))
		require.Equal(t, reservation.StatusReady, state.reservation(r.ID()).Status())
	})

	t.Run("requires a copy on the shelf", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		b := builder.NewBookBuilder().
			WithCopies(1, 0).
			WithStatus(book.StatusBorrowed).
			BuildReconstructed()
		state.putBook(b)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithExpiryDate(testNow.Add(24 * time.Hour)).
			BuildReconstructed()
		state.putReservation(r)

		err := cmd.MarkReady(ctx, r.ID())

		require.ErrorIs(t, err, policy.ErrBookUnavailable)
	})

	t.Run("expired holds cannot become ready", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		b := seedBook(state, 2, 2)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithExpiryDate(testNow.Add(-1 * time.Hour)).
			BuildReconstructed()
		state.putReservation(r)

		err := cmd.MarkReady(ctx, r.ID())

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
	})
}

func TestReservationFulfill(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the hold and opens an active loan in one transaction", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := seedBook(state, 2, 1)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithUser(u.ID).
			WithStatus(reservation.StatusReady).
			BuildReconstructed()
		state.putReservation(r)

		loanID, err := cmd.Fulfill(ctx, r.ID())

		require.NoError(t, err)
		require.Equal(t, reservation.StatusFulfilled, state.reservation(r.ID()).Status())
		created := state.loan(loanID)
		require.Equal(t, loan.StatusActive, created.Status())
		require.Equal(t, u.ID, created.UserID())
		require.Equal(t, 0, state.book(b.ID()).AvailableCopies())
	})

	t.Run("only READY holds fulfill", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := seedBook(state, 2, 1)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithUser(u.ID).
			WithExpiryDate(testNow.Add(24 * time.Hour)).
			BuildReconstructed()
		state.putReservation(r)

		_, err := cmd.Fulfill(ctx, r.ID())

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
	})

	t.Run("conflicting loan rolls the whole transaction back", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		u := activeMember()
		state.putUser(u)
		b := seedBook(state, 3, 2)
		r := builder.NewReservationBuilder().
			WithBook(b.ID()).
			WithUser(u.ID).
			WithStatus(reservation.StatusReady).
			BuildReconstructed()
		state.putReservation(r)
		seedActiveLoan(state, b.ID(), u.ID)

		_, err := cmd.Fulfill(ctx, r.ID())

		require.ErrorIs(t, err, errs.ErrDuplicateActiveLoan)
		// Nothing moved: the hold is still READY and the shelf is untouched.
		require.Equal(t, reservation.StatusReady, state.reservation(r.ID()).Status())
		require.Equal(t, 2, state.book(b.ID()).AvailableCopies())
	})
}

func TestReservationCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an open hold", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		r := builder.NewReservationBuilder().BuildReconstructed()
		state.putReservation(r)

		require.NoError(t, cmd.Cancel(ctx, r.ID()))
		require.Equal(t, reservation.StatusCancelled, state.reservation(r.ID()).Status())
	})

	t.Run("terminal holds cannot be cancelled", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		r := builder.NewReservationBuilder().
			WithStatus(reservation.StatusFulfilled).
			BuildReconstructed()
		state.putReservation(r)

		err := cmd.Cancel(ctx, r.ID())

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
	})
}

func TestReservationDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a closed hold", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		r := builder.NewReservationBuilder().
			WithStatus(reservation.StatusCancelled).
			BuildReconstructed()
		state.putReservation(r)

		require.NoError(t, cmd.Delete(ctx, r.ID()))
		require.Nil(t, state.reservation(r.ID()))
	})

	t.Run("refuses while the hold is open", func(t *testing.T) {
		state, cmd, _ := newReservationFixture()
		r := builder.NewReservationBuilder().BuildReconstructed()
		state.putReservation(r)

		err := cmd.Delete(ctx, r.ID())

		require.ErrorIs(t, err, errs.ErrInvalidReservationState)
		require.NotNil(t, state.reservation(r.ID()))
	})
}

func TestReservationExpireSweep(t *testing.T) {
	ctx := context.Background()
	state, cmd, _ := newReservationFixture()

	overdue := builder.NewReservationBuilder().
		WithExpiryDate(testNow.Add(-1 * time.Hour)).
		BuildReconstructed()
	waiting := builder.NewReservationBuilder().
		WithExpiryDate(testNow.Add(24 * time.Hour)).
		BuildReconstructed()
	ready := builder.NewReservationBuilder().
		WithStatus(reservation.StatusReady).
		WithExpiryDate(testNow.Add(-1 * time.Hour)).
		BuildReconstructed()
	state.putReservation(overdue)
	state.putReservation(waiting)
	state.putReservation(ready)

	n, err := cmd.ExpireSweep(ctx)

	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Equal(t, reservation.StatusExpired, state.reservation(overdue.ID()).Status())
	require.Equal(t, reservation.StatusActive, state.reservation(waiting.ID()).Status())
	// READY holds are the desk's responsibility; the sweep leaves them alone.
	require.Equal(t, reservation.StatusReady, state.reservation(ready.ID()).Status())
}
