//go:build unit

package policy_test

import (
	"testing"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/policy"
	"bookhub/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLimits() policy.Limits {
	return policy.Limits{
		MaxActiveLoans:        5,
		MaxActiveReservations: 3,
		MaxRenewals:           2,
		RenewalsAllowed:       true,
		LoanPeriodDays:        14,
		ReservationExpiryDays: 7,
	}
}

func eligibleBorrower() policy.BorrowerState {
	return policy.BorrowerState{IsActive: true}
}

func TestCanLoan(t *testing.T) {
	engine := policy.NewEngine(defaultLimits())

	cases := []struct {
		name     string
		book     func() *book.Book
		borrower policy.BorrowerState
		errIs    error
	}{
		{
			name:     "available book, clean borrower",
			book:     func() *book.Book { return builder.NewBookBuilder().BuildReconstructed() },
			borrower: eligibleBorrower(),
		},
		{
			name:     "inactive user",
			book:     func() *book.Book { return builder.NewBookBuilder().BuildReconstructed() },
			borrower: policy.BorrowerState{IsActive: false},
			errIs:    policy.ErrUserNotEligible,
		},
		{
			name: "no copies on the shelf",
			book: func() *book.Book {
				return builder.NewBookBuilder().
					WithCopies(2, 0).
					WithStatus(book.StatusBorrowed).
					BuildReconstructed()
			},
			borrower: eligibleBorrower(),
			errIs:    policy.ErrBookUnavailable,
		},
		{
			name: "book under maintenance",
			book: func() *book.Book {
				return builder.NewBookBuilder().
					WithStatus(book.StatusUnderMaintenance).
					BuildReconstructed()
			},
			borrower: eligibleBorrower(),
			errIs:    policy.ErrBookUnavailable,
		},
		{
			name: "second loan of the same book",
			book: func() *book.Book { return builder.NewBookBuilder().BuildReconstructed() },
			borrower: policy.BorrowerState{
				IsActive:            true,
				HasActiveLoanOnBook: true,
			},
			errIs: policy.ErrDuplicateLoan,
		},
		{
			name: "loan limit reached",
			book: func() *book.Book { return builder.NewBookBuilder().BuildReconstructed() },
			borrower: policy.BorrowerState{
				IsActive:        true,
				ActiveLoanCount: 5,
			},
			errIs: policy.ErrLoanLimitReached,
		},
		{
			name: "one under the loan limit",
			book: func() *book.Book { return builder.NewBookBuilder().BuildReconstructed() },
			borrower: policy.BorrowerState{
				IsActive:        true,
				ActiveLoanCount: 4,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.CanLoan(tc.book(), tc.borrower)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCanReserve(t *testing.T) {
	engine := policy.NewEngine(defaultLimits())

	cases := []struct {
		name     string
		status   book.Status
		borrower policy.BorrowerState
		errIs    error
	}{
		{
			name:     "checked-out titles can be reserved",
			status:   book.StatusBorrowed,
			borrower: eligibleBorrower(),
		},
		{
			name:     "available titles can be reserved too",
			status:   book.StatusAvailable,
			borrower: eligibleBorrower(),
		},
		{
			name:     "inactive user",
			status:   book.StatusBorrowed,
			borrower: policy.BorrowerState{IsActive: false},
			errIs:    policy.ErrUserNotEligible,
		},
		{
			name:     "lost titles cannot be reserved",
			status:   book.StatusLost,
			borrower: eligibleBorrower(),
			errIs:    policy.ErrBookUnavailable,
		},
		{
			name:     "titles under maintenance cannot be reserved",
			status:   book.StatusUnderMaintenance,
			borrower: eligibleBorrower(),
			errIs:    policy.ErrBookUnavailable,
		},
		{
			name:   "second open reservation for the same book",
			status: book.StatusBorrowed,
			borrower: policy.BorrowerState{
				IsActive:                 true,
				HasOpenReservationOnBook: true,
			},
			errIs: policy.ErrDuplicateReservation,
		},
		{
			name:   "reservation limit reached",
			status: book.StatusBorrowed,
			borrower: policy.BorrowerState{
				IsActive:               true,
				ActiveReservationCount: 3,
			},
			errIs: policy.ErrReservationLimit,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.CanReserve(tc.status, tc.borrower)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCanRenew(t *testing.T) {
	t.Run("active loan under the cap", func(t *testing.T) {
		engine := policy.NewEngine(defaultLimits())
		require.NoError(t, engine.CanRenew(loan.StatusActive, 0))
		require.NoError(t, engine.CanRenew(loan.StatusActive, 1))
	})

	t.Run("renewal cap", func(t *testing.T) {
		engine := policy.NewEngine(defaultLimits())
		require.ErrorIs(t, engine.CanRenew(loan.StatusActive, 2), policy.ErrRenewalNotAllowed)
		require.ErrorIs(t, engine.CanRenew(loan.StatusActive, 3), policy.ErrRenewalNotAllowed)
	})

	t.Run("renewals disabled globally", func(t *testing.T) {
		limits := defaultLimits()
		limits.RenewalsAllowed = false
		engine := policy.NewEngine(limits)
		require.ErrorIs(t, engine.CanRenew(loan.StatusActive, 0), policy.ErrRenewalNotAllowed)
	})

	t.Run("only active loans renew", func(t *testing.T) {
		engine := policy.NewEngine(defaultLimits())
		for _, status := range []loan.Status{
			loan.StatusPending, loan.StatusRejected, loan.StatusReturned, loan.StatusLost,
		} {
			require.ErrorIs(t, engine.CanRenew(status, 0), policy.ErrRenewalNotAllowed, "status %s", status)
		}
	})
}

func TestPolicyDurations(t *testing.T) {
	engine := policy.NewEngine(defaultLimits())
	assert.Equal(t, 14*24*60, int(engine.LoanPeriod().Minutes()))
	assert.Equal(t, 7*24*60, int(engine.ReservationTTL().Minutes()))
}
