package shared

import (
	"context"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/reservation"
	"bookhub/internal/domain/user"
	"bookhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Books() BookRepository
	Loans() LoanRepository
	Reservations() ReservationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the snapshot lookups write commands need for policy
// decisions. Inside Within they observe the transaction, so a policy check
// and the write it guards see the same state.
type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ActiveLoanCount(ctx context.Context, userID uuid.UUID) (int, error)
	HasActiveLoan(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
	ActiveReservationCount(ctx context.Context, userID uuid.UUID) (int, error)
	HasOpenReservation(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
	BookHasOpenCommitments(ctx context.Context, bookID uuid.UUID) (bool, error)
}

type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	// FindByIDForUpdate locks the book row until the transaction ends.
	// Every copy-counter mutation goes through this lock.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*book.Book, error)
	Save(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LoanRepository interface {
	Create(ctx context.Context, l *loan.Loan) error
	FindByID(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	Save(ctx context.Context, l *loan.Loan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Save(ctx context.Context, r *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindNextInQueue returns the earliest non-expired ACTIVE reservation for
	// the book, ordered by (reservation_date, id), or nil when the queue is
	// empty.
	FindNextInQueue(ctx context.Context, bookID uuid.UUID, now time.Time) (*reservation.Reservation, error)
	// ExpireActiveBefore persists EXPIRED for every ACTIVE reservation whose
	// expiry date passed, returning how many rows changed.
	ExpireActiveBefore(ctx context.Context, now time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
