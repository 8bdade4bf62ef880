//go:build unit

package loan_test

import (
	"testing"
	"time"

	"bookhub/internal/domain/loan"
	"bookhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoan(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewLoanBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, loan.StatusActive, actual.Status())
		assert.Equal(t, 0, actual.RenewalCount())
		assert.Nil(t, actual.ReturnDate())
	})

	t.Run("due date must follow loan date", func(t *testing.T) {
		now := time.Now()
		_, err := loan.NewLoan(uuid.New(), uuid.New(), now, now)
		require.ErrorIs(t, err, loan.ErrInvalidDueDate)

		_, err = loan.NewLoan(uuid.New(), uuid.New(), now, now.Add(-time.Hour))
		require.ErrorIs(t, err, loan.ErrInvalidDueDate)
	})

	t.Run("request starts pending", func(t *testing.T) {
		now := time.Now()
		actual, err := loan.NewLoanRequest(uuid.New(), uuid.New(), now, now.Add(14*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, loan.StatusPending, actual.Status())
	})
}

func TestLoanApprove(t *testing.T) {
	period := 14 * 24 * time.Hour

	t.Run("pending becomes active with a fresh window", func(t *testing.T) {
		requested := time.Now().Add(-48 * time.Hour)
		l, err := loan.NewLoanRequest(uuid.New(), uuid.New(), requested, requested.Add(period))
		require.NoError(t, err)

		approvedAt := time.Now()
		require.NoError(t, l.Approve(approvedAt, period))
		assert.Equal(t, loan.StatusActive, l.Status())
		assert.Equal(t, approvedAt, l.LoanDate())
		assert.Equal(t, approvedAt.Add(period), l.DueDate())
	})

	t.Run("non-pending loans cannot be approved", func(t *testing.T) {
		for _, status := range []loan.Status{
			loan.StatusActive, loan.StatusRejected, loan.StatusReturned, loan.StatusLost,
		} {
			l := builder.NewLoanBuilder().WithStatus(status).BuildReconstructed()
			err := l.Approve(time.Now(), period)
			require.ErrorIs(t, err, loan.ErrNotPending, "status %s", status)
		}
	})
}

func TestLoanReject(t *testing.T) {
	t.Run("pending becomes rejected", func(t *testing.T) {
		l := builder.NewLoanBuilder().WithStatus(loan.StatusPending).BuildReconstructed()
		require.NoError(t, l.Reject())
		assert.Equal(t, loan.StatusRejected, l.Status())
	})

	t.Run("active loans cannot be rejected", func(t *testing.T) {
		l := builder.NewLoanBuilder().WithStatus(loan.StatusActive).BuildReconstructed()
		require.ErrorIs(t, l.Reject(), loan.ErrNotPending)
	})
}

func TestLoanRenew(t *testing.T) {
	period := 14 * 24 * time.Hour

	t.Run("extends due date and counts the renewal", func(t *testing.T) {
		due := time.Now().Add(3 * 24 * time.Hour)
		l := builder.NewLoanBuilder().WithDueDate(due).BuildReconstructed()

		require.NoError(t, l.Renew(period))
		assert.Equal(t, due.Add(period), l.DueDate())
		assert.Equal(t, 1, l.RenewalCount())
	})

	t.Run("only active loans renew", func(t *testing.T) {
		for _, status := range []loan.Status{
			loan.StatusPending, loan.StatusRejected, loan.StatusReturned, loan.StatusLost,
		} {
			l := builder.NewLoanBuilder().WithStatus(status).BuildReconstructed()
			require.ErrorIs(t, l.Renew(period), loan.ErrNotActive, "status %s", status)
		}
	})
}

func TestLoanReturn(t *testing.T) {
	t.Run("active becomes returned with timestamp and notes", func(t *testing.T) {
		l := builder.NewLoanBuilder().BuildReconstructed()
		now := time.Now()
		notes := "slight water damage"

		require.NoError(t, l.Return(now, &notes))
		assert.Equal(t, loan.StatusReturned, l.Status())
		require.NotNil(t, l.ReturnDate())
		assert.Equal(t, now, *l.ReturnDate())
		require.NotNil(t, l.Notes())
		assert.Equal(t, notes, *l.Notes())
	})

	t.Run("overdue loans still return", func(t *testing.T) {
		l := builder.NewLoanBuilder().
			WithDueDate(time.Now().Add(-72 * time.Hour)).
			BuildReconstructed()

		require.NoError(t, l.Return(time.Now(), nil))
		assert.Equal(t, loan.StatusReturned, l.Status())
	})

	t.Run("double return", func(t *testing.T) {
		l := builder.NewLoanBuilder().WithStatus(loan.StatusReturned).BuildReconstructed()
		require.ErrorIs(t, l.Return(time.Now(), nil), loan.ErrAlreadyReturned)
	})

	t.Run("pending loans cannot be returned", func(t *testing.T) {
		l := builder.NewLoanBuilder().WithStatus(loan.StatusPending).BuildReconstructed()
		require.ErrorIs(t, l.Return(time.Now(), nil), loan.ErrNotActive)
	})
}

func TestLoanMarkLost(t *testing.T) {
	t.Run("active becomes lost", func(t *testing.T) {
		l := builder.NewLoanBuilder().BuildReconstructed()
		require.NoError(t, l.MarkLost())
		assert.Equal(t, loan.StatusLost, l.Status())
	})

	t.Run("returned loans cannot be lost", func(t *testing.T) {
		l := builder.NewLoanBuilder().WithStatus(loan.StatusReturned).BuildReconstructed()
		require.ErrorIs(t, l.MarkLost(), loan.ErrNotActive)
	})
}

func TestLoanOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		status   loan.Status
		dueDate  time.Time
		overdue  bool
		daysOver int
	}{
		{
			name:   "active before due date",
			status: loan.StatusActive, dueDate: now.Add(24 * time.Hour),
			overdue: false,
		},
		{
			name:   "active past due date",
			status: loan.StatusActive, dueDate: now.Add(-25 * time.Hour),
			overdue: true, daysOver: 1,
		},
		{
			name:   "active ten days past",
			status: loan.StatusActive, dueDate: now.Add(-10 * 24 * time.Hour),
			overdue: true, daysOver: 10,
		},
		{
			name:   "returned loans are never overdue",
			status: loan.StatusReturned, dueDate: now.Add(-10 * 24 * time.Hour),
			overdue: false,
		},
		{
			name:   "pending loans are never overdue",
			status: loan.StatusPending, dueDate: now.Add(-10 * 24 * time.Hour),
			overdue: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := builder.NewLoanBuilder().
				WithStatus(tc.status).
				WithDueDate(tc.dueDate).
				BuildReconstructed()

			assert.Equal(t, tc.overdue, l.IsOverdue(now))
			assert.Equal(t, tc.daysOver, l.DaysOverdue(now))
		})
	}
}

func TestLoanCanDelete(t *testing.T) {
	assert.True(t, builder.NewLoanBuilder().WithStatus(loan.StatusReturned).BuildReconstructed().CanDelete())
	assert.True(t, builder.NewLoanBuilder().WithStatus(loan.StatusRejected).BuildReconstructed().CanDelete())
	assert.False(t, builder.NewLoanBuilder().WithStatus(loan.StatusActive).BuildReconstructed().CanDelete())
	assert.False(t, builder.NewLoanBuilder().WithStatus(loan.StatusPending).BuildReconstructed().CanDelete())
	assert.False(t, builder.NewLoanBuilder().WithStatus(loan.StatusLost).BuildReconstructed().CanDelete())
}
