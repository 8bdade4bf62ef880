//go:build unit

package book_test

import (
	"testing"

	"bookhub/internal/domain/book"
	"bookhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 3, actual.TotalCopies())
		assert.Equal(t, 3, actual.AvailableCopies())
		assert.Equal(t, book.StatusAvailable, actual.Status())
		assert.True(t, actual.IsAvailable())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.BookBuilder)
			errIs  error
		}{
			{
				name:   "empty isbn",
				mutate: func(b *builder.BookBuilder) { b.WithISBN("  ") },
				errIs:  book.ErrInvalidISBN,
			},
			{
				name:   "empty title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "negative copies",
				mutate: func(b *builder.BookBuilder) { b.TotalCopies = -1 },
				errIs:  book.ErrInvalidCopyCount,
			},
			{
				name:   "zero copies is allowed",
				mutate: func(b *builder.BookBuilder) { b.TotalCopies = 0 },
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewBookBuilder()
				tc.mutate(b)
				actual, err := b.BuildDomain()
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.Nil(t, actual)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, actual)
			})
		}
	})

	t.Run("zero copies starts as borrowed", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().WithCopies(0, 0).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, book.StatusBorrowed, actual.Status())
		assert.False(t, actual.IsAvailable())
	})
}

func TestBorrowCopy(t *testing.T) {
	t.Run("decrements available copies", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(3, 3).BuildReconstructed()

		require.NoError(t, b.BorrowCopy())
		assert.Equal(t, 2, b.AvailableCopies())
		assert.Equal(t, 3, b.TotalCopies())
		assert.Equal(t, book.StatusAvailable, b.Status())
	})

	t.Run("last copy flips status to borrowed", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(2, 1).BuildReconstructed()

		require.NoError(t, b.BorrowCopy())
		assert.Equal(t, 0, b.AvailableCopies())
		assert.Equal(t, book.StatusBorrowed, b.Status())
		assert.False(t, b.IsAvailable())
	})

	t.Run("no copies left", func(t *testing.T) {
		b := builder.NewBookBuilder().
			WithCopies(2, 0).
			WithStatus(book.StatusBorrowed).
			BuildReconstructed()

		err := b.BorrowCopy()
		require.ErrorIs(t, err, book.ErrNoAvailableCopies)
		assert.Equal(t, 0, b.AvailableCopies())
	})

	t.Run("corrupted counters are rejected before mutation", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(1, 5).BuildReconstructed()

		err := b.BorrowCopy()
		require.ErrorIs(t, err, book.ErrInventoryCorrupted)
		assert.Equal(t, 5, b.AvailableCopies())
	})
}

func TestReturnCopy(t *testing.T) {
	t.Run("increments available copies", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(3, 1).BuildReconstructed()

		b.ReturnCopy()
		assert.Equal(t, 2, b.AvailableCopies())
	})

	t.Run("return of last outstanding copy reopens the title", func(t *testing.T) {
		b := builder.NewBookBuilder().
			WithCopies(1, 0).
			WithStatus(book.StatusBorrowed).
			BuildReconstructed()

		b.ReturnCopy()
		assert.Equal(t, 1, b.AvailableCopies())
		assert.Equal(t, book.StatusAvailable, b.Status())
	})

	t.Run("capped at total", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(2, 2).BuildReconstructed()

		b.ReturnCopy()
		assert.Equal(t, 2, b.AvailableCopies())
	})
}

func TestResize(t *testing.T) {
	cases := []struct {
		name          string
		total         int
		available     int
		newTotal      int
		wantAvailable int
		wantStatus    book.Status
		errIs         error
	}{
		{
			name:  "grow adds available copies",
			total: 3, available: 1, newTotal: 5,
			wantAvailable: 3, wantStatus: book.StatusAvailable,
		},
		{
			name:  "shrink removes available copies",
			total: 5, available: 4, newTotal: 3,
			wantAvailable: 2, wantStatus: book.StatusAvailable,
		},
		{
			name:  "shrink below outstanding clamps at zero",
			total: 5, available: 1, newTotal: 2,
			wantAvailable: 0, wantStatus: book.StatusBorrowed,
		},
		{
			name:  "shrink to zero",
			total: 3, available: 3, newTotal: 0,
			wantAvailable: 0, wantStatus: book.StatusBorrowed,
		},
		{
			name:  "negative total rejected",
			total: 3, available: 3, newTotal: -1,
			errIs: book.ErrInvalidCopyCount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookBuilder().
				WithCopies(tc.total, tc.available).
				BuildReconstructed()

			err := b.Resize(tc.newTotal)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.total, b.TotalCopies())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.newTotal, b.TotalCopies())
			assert.Equal(t, tc.wantAvailable, b.AvailableCopies())
			assert.Equal(t, tc.wantStatus, b.Status())
		})
	}

	t.Run("maintenance hold survives resize", func(t *testing.T) {
		b := builder.NewBookBuilder().
			WithCopies(3, 3).
			WithStatus(book.StatusUnderMaintenance).
			BuildReconstructed()

		require.NoError(t, b.Resize(5))
		assert.Equal(t, book.StatusUnderMaintenance, b.Status())
		assert.False(t, b.IsAvailable())
	})
}

func TestWriteOff(t *testing.T) {
	t.Run("removes one committed copy", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(3, 1).BuildReconstructed()

		b.WriteOff()
		assert.Equal(t, 2, b.TotalCopies())
		assert.Equal(t, 1, b.AvailableCopies())
	})

	t.Run("write-off of the only copy", func(t *testing.T) {
		b := builder.NewBookBuilder().
			WithCopies(1, 0).
			WithStatus(book.StatusBorrowed).
			BuildReconstructed()

		b.WriteOff()
		assert.Equal(t, 0, b.TotalCopies())
		assert.Equal(t, 0, b.AvailableCopies())
		assert.Equal(t, book.StatusBorrowed, b.Status())
	})

	t.Run("zero total stays at zero", func(t *testing.T) {
		b := builder.NewBookBuilder().WithCopies(0, 0).BuildReconstructed()

		b.WriteOff()
		assert.Equal(t, 0, b.TotalCopies())
	})
}

func TestSetStatus(t *testing.T) {
	b := builder.NewBookBuilder().BuildReconstructed()

	require.NoError(t, b.SetStatus(book.StatusUnderMaintenance))
	assert.False(t, b.IsAvailable())

	err := b.SetStatus(book.Status("SHELVED"))
	require.ErrorIs(t, err, book.ErrInvalidStatus)
}
