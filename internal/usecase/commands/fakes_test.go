//go:build unit

package commands_test

import (
	"context"
	"strings"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/domain/loan"
	"bookhub/internal/domain/reservation"
	"bookhub/internal/domain/user"
	"bookhub/internal/infra"
	"bookhub/internal/infra/db"
	"bookhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeState is an in-memory stand-in for the database. The fake unit of work
// snapshots it before each transaction and restores it on failure, so tests
// can assert rollback semantics without a real database.
type fakeState struct {
	books        map[uuid.UUID]*book.Book
	loans        map[uuid.UUID]*loan.Loan
	reservations map[uuid.UUID]*reservation.Reservation
	users        map[uuid.UUID]*shared.UserSnapshot
}

func newFakeState() *fakeState {
	return &fakeState{
		books:        make(map[uuid.UUID]*book.Book),
		loans:        make(map[uuid.UUID]*loan.Loan),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		users:        make(map[uuid.UUID]*shared.UserSnapshot),
	}
}

func (s *fakeState) putBook(b *book.Book) {
	s.books[b.ID()] = cloneBook(b)
}

func (s *fakeState) putLoan(l *loan.Loan) {
	s.loans[l.ID()] = cloneLoan(l)
}

func (s *fakeState) putReservation(r *reservation.Reservation) {
	s.reservations[r.ID()] = cloneReservation(r)
}

func (s *fakeState) putUser(u *shared.UserSnapshot) {
	s.users[u.ID] = u
}

func (s *fakeState) book(id uuid.UUID) *book.Book {
	return cloneBook(s.books[id])
}

func (s *fakeState) loan(id uuid.UUID) *loan.Loan {
	return cloneLoan(s.loans[id])
}

func (s *fakeState) reservation(id uuid.UUID) *reservation.Reservation {
	return cloneReservation(s.reservations[id])
}

func activeMember() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:       uuid.New(),
		Email:    "member@example.com",
		Role:     user.RoleMember.String(),
		IsActive: true,
	}
}

func (s *fakeState) snapshot() *fakeState {
	out := newFakeState()
	for id, b := range s.books {
		out.books[id] = cloneBook(b)
	}
	for id, l := range s.loans {
		out.loans[id] = cloneLoan(l)
	}
	for id, r := range s.reservations {
		out.reservations[id] = cloneReservation(r)
	}
	for id, u := range s.users {
		out.users[id] = u
	}
	return out
}

func (s *fakeState) restore(snap *fakeState) {
	s.books = snap.books
	s.loans = snap.loans
	s.reservations = snap.reservations
	s.users = snap.users
}

func cloneBook(b *book.Book) *book.Book {
	if b == nil {
		return nil
	}
	return book.ReconstructBook(
		b.ID(), b.ISBN(), b.Title(), b.Author(),
		b.TotalCopies(), b.AvailableCopies(), b.Status(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

func cloneLoan(l *loan.Loan) *loan.Loan {
	if l == nil {
		return nil
	}
	return loan.ReconstructLoan(
		l.ID(), l.BookID(), l.UserID(),
		l.LoanDate(), l.DueDate(), l.ReturnDate(), l.Notes(),
		l.Status(), l.RenewalCount(),
		l.CreatedAt(), l.UpdatedAt(),
	)
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	if r == nil {
		return nil
	}
	return reservation.ReconstructReservation(
		r.ID(), r.BookID(), r.UserID(),
		r.ReservationDate(), r.ExpiryDate(), r.Status(),
		r.CreatedAt(), r.UpdatedAt(),
	)
}

type fakeUoW struct {
	state *fakeState
}

func newFakeUoW(state *fakeState) *fakeUoW {
	return &fakeUoW{state: state}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	snap := u.state.snapshot()
	if err := fn(ctx, &fakeTx{state: u.state}); err != nil {
		u.state.restore(snap)
		return err
	}
	return nil
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Books() shared.BookRepository {
	return &fakeBookRepo{state: t.state}
}

func (t *fakeTx) Loans() shared.LoanRepository {
	return &fakeLoanRepo{state: t.state}
}

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{state: t.state}
}

func (t *fakeTx) Users() shared.UserRepository {
	return &fakeUserRepo{}
}

func (t *fakeTx) Reads() shared.CommandReads {
	return &fakeReads{state: t.state}
}

func (t *fakeTx) DB() db.DBTX {
	return nil
}

type fakeBookRepo struct {
	state *fakeState
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	for _, existing := range r.state.books {
		if existing.ISBN() == b.ISBN() {
			return infra.WrapRepoErr(infra.KindConflict, "duplicate isbn", nil)
		}
	}
	r.state.putBook(b)
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.state.books[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "book not found", nil)
	}
	return cloneBook(b), nil
}

func (r *fakeBookRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) Save(_ context.Context, b *book.Book) error {
	if _, ok := r.state.books[b.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "book not found", nil)
	}
	if b.AvailableCopies() < 0 || b.AvailableCopies() > b.TotalCopies() {
		return infra.WrapRepoErr(infra.KindInvariant, "copy counter check failed", nil)
	}
	r.state.putBook(b)
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.books[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "book not found", nil)
	}
	delete(r.state.books, id)
	return nil
}

type fakeLoanRepo struct {
	state *fakeState
}

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) error {
	if l.Status() == loan.StatusActive {
		for _, existing := range r.state.loans {
			if existing.Status() == loan.StatusActive &&
				existing.BookID() == l.BookID() && existing.UserID() == l.UserID() {
				return infra.WrapRepoErr(infra.KindConflict, "duplicate active loan", nil)
			}
		}
	}
	r.state.putLoan(l)
	return nil
}

func (r *fakeLoanRepo) FindByID(_ context.Context, id uuid.UUID) (*loan.Loan, error) {
	l, ok := r.state.loans[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "loan not found", nil)
	}
	return cloneLoan(l), nil
}

func (r *fakeLoanRepo) Save(_ context.Context, l *loan.Loan) error {
	if _, ok := r.state.loans[l.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "loan not found", nil)
	}
	if l.Status() == loan.StatusActive {
		for _, existing := range r.state.loans {
			if existing.ID() != l.ID() && existing.Status() == loan.StatusActive &&
				existing.BookID() == l.BookID() && existing.UserID() == l.UserID() {
				return infra.WrapRepoErr(infra.KindConflict, "duplicate active loan", nil)
			}
		}
	}
	r.state.putLoan(l)
	return nil
}

func (r *fakeLoanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.loans[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "loan not found", nil)
	}
	delete(r.state.loans, id)
	return nil
}

type fakeReservationRepo struct {
	state *fakeState
}

func isOpenReservation(r *reservation.Reservation) bool {
	return r.Status() == reservation.StatusPending ||
		r.Status() == reservation.StatusActive ||
		r.Status() == reservation.StatusReady
}

func (f *fakeReservationRepo) Create(_ context.Context, r *reservation.Reservation) error {
	for _, existing := range f.state.reservations {
		if isOpenReservation(existing) &&
			existing.BookID() == r.BookID() && existing.UserID() == r.UserID() {
			return infra.WrapRepoErr(infra.KindConflict, "duplicate open reservation", nil)
		}
	}
	f.state.putReservation(r)
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r, ok := f.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return cloneReservation(r), nil
}

func (f *fakeReservationRepo) Save(_ context.Context, r *reservation.Reservation) error {
	if _, ok := f.state.reservations[r.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	f.state.putReservation(r)
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.state.reservations[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	delete(f.state.reservations, id)
	return nil
}

func (f *fakeReservationRepo) FindNextInQueue(_ context.Context, bookID uuid.UUID, now time.Time) (*reservation.Reservation, error) {
	var next *reservation.Reservation
	for _, r := range f.state.reservations {
		if r.BookID() != bookID || r.Status() != reservation.StatusActive {
			continue
		}
		if !r.ExpiryDate().After(now) {
			continue
		}
		if next == nil || earlierInQueue(r, next) {
			next = r
		}
	}
	return cloneReservation(next), nil
}

// earlierInQueue mirrors the ORDER BY (reservation_date, id) tuple ordering.
func earlierInQueue(a, b *reservation.Reservation) bool {
	if !a.ReservationDate().Equal(b.ReservationDate()) {
		return a.ReservationDate().Before(b.ReservationDate())
	}
	return strings.Compare(a.ID().String(), b.ID().String()) < 0
}

func (f *fakeReservationRepo) ExpireActiveBefore(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, r := range f.state.reservations {
		if r.Status() != reservation.StatusActive || !r.ExpiryDate().Before(now) {
			continue
		}
		c := cloneReservation(r)
		if err := c.Expire(); err != nil {
			return n, err
		}
		f.state.reservations[id] = c
		n++
	}
	return n, nil
}

type fakeUserRepo struct{}

func (r *fakeUserRepo) Create(_ context.Context, _ *user.User) error {
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.state.users[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	return u, nil
}

func (r *fakeReads) ActiveLoanCount(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, l := range r.state.loans {
		if l.UserID() == userID && l.Status() == loan.StatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeReads) HasActiveLoan(_ context.Context, bookID, userID uuid.UUID) (bool, error) {
	for _, l := range r.state.loans {
		if l.BookID() == bookID && l.UserID() == userID && l.Status() == loan.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) ActiveReservationCount(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, res := range r.state.reservations {
		if res.UserID() == userID && isOpenReservation(res) {
			count++
		}
	}
	return count, nil
}

func (r *fakeReads) HasOpenReservation(_ context.Context, bookID, userID uuid.UUID) (bool, error) {
	for _, res := range r.state.reservations {
		if res.BookID() == bookID && res.UserID() == userID && isOpenReservation(res) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) BookHasOpenCommitments(_ context.Context, bookID uuid.UUID) (bool, error) {
	for _, l := range r.state.loans {
		if l.BookID() == bookID && (l.Status() == loan.StatusPending || l.Status() == loan.StatusActive) {
			return true, nil
		}
	}
	for _, res := range r.state.reservations {
		if res.BookID() == bookID && isOpenReservation(res) {
			return true, nil
		}
	}
	return false, nil
}
