package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending      = errors.New("reservation is not pending")
	ErrNotActive       = errors.New("reservation is not active")
	ErrNotReady        = errors.New("reservation is not ready for pickup")
	ErrAlreadyTerminal = errors.New("reservation already fulfilled, cancelled or expired")
	ErrNotDeletable    = errors.New("only terminal reservations can be deleted")
)

// Reservation is one member's place in a book's hold queue. Queue position is
// never stored; it is derived from (reservationDate, id) ordering at read
// time. Expiry is likewise derived lazily and only persisted by the sweep.
type Reservation struct {
	id              uuid.UUID
	bookID          uuid.UUID
	userID          uuid.UUID
	reservationDate time.Time
	expiryDate      time.Time
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation creates an immediately active reservation, the desk-issued flow.
func NewReservation(bookID, userID uuid.UUID, now time.Time, ttl time.Duration) *Reservation {
	return &Reservation{
		id:              uuid.New(),
		bookID:          bookID,
		userID:          userID,
		reservationDate: now,
		expiryDate:      now.Add(ttl),
		status:          StatusActive,
	}
}

// NewReservationRequest creates a pending reservation awaiting librarian
// approval. The expiry clock starts at approval, not at request.
func NewReservationRequest(bookID, userID uuid.UUID, now time.Time) *Reservation {
	return &Reservation{
		id:              uuid.New(),
		bookID:          bookID,
		userID:          userID,
		reservationDate: now,
		status:          StatusPending,
	}
}

// ReconstructReservation rebuilds a persisted reservation without
// re-validating invariants.
func ReconstructReservation(
	id, bookID, userID uuid.UUID,
	reservationDate, expiryDate time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		bookID:          bookID,
		userID:          userID,
		reservationDate: reservationDate,
		expiryDate:      expiryDate,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Approve activates a pending reservation and restarts its queue clock, so a
// long-pending request does not jump ahead of holds placed while it waited.
func (r *Reservation) Approve(now time.Time, ttl time.Duration) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusActive
	r.reservationDate = now
	r.expiryDate = now.Add(ttl)
	return nil
}

func (r *Reservation) MarkReady() error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusReady
	return nil
}

func (r *Reservation) Fulfill() error {
	if r.status != StatusReady {
		return ErrNotReady
	}
	r.status = StatusFulfilled
	return nil
}

// Cancel closes any open reservation. Cancelling one that already reached a
// terminal state is an error, not a silent no-op, so double submissions
// surface to the caller.
func (r *Reservation) Cancel() error {
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	r.status = StatusCancelled
	return nil
}

func (r *Reservation) Expire() error {
	if r.status != StatusActive && r.status != StatusReady {
		return ErrNotActive
	}
	r.status = StatusExpired
	return nil
}

func (r *Reservation) CanDelete() bool {
	return r.status.IsTerminal()
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return r.status == StatusActive && now.After(r.expiryDate)
}

// EffectiveStatus folds lazy expiry into the stored status for read paths.
func (r *Reservation) EffectiveStatus(now time.Time) Status {
	if r.HasExpired(now) {
		return StatusExpired
	}
	return r.status
}

func (r *Reservation) IsTerminal() bool {
	return r.status.IsTerminal()
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) BookID() uuid.UUID          { return r.bookID }
func (r *Reservation) UserID() uuid.UUID          { return r.userID }
func (r *Reservation) ReservationDate() time.Time { return r.reservationDate }
func (r *Reservation) ExpiryDate() time.Time      { return r.expiryDate }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
