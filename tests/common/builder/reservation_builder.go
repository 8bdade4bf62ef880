//go:build unit || e2e

package builder

import (
	"time"

	domreservation "bookhub/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID              uuid.UUID
	BookID          uuid.UUID
	UserID          uuid.UUID
	ReservationDate time.Time
	ExpiryDate      time.Time
	Status          domreservation.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:              uuid.New(),
		BookID:          uuid.New(),
		UserID:          uuid.New(),
		ReservationDate: now,
		ExpiryDate:      now.Add(7 * 24 * time.Hour),
		Status:          domreservation.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithExpiryDate(expiry time.Time) *ReservationBuilder {
	b.ExpiryDate = expiry
	return b
}

func (b *ReservationBuilder) WithReservationDate(at time.Time) *ReservationBuilder {
	b.ReservationDate = at
	return b
}

func (b *ReservationBuilder) WithBook(bookID uuid.UUID) *ReservationBuilder {
	b.BookID = bookID
	return b
}

func (b *ReservationBuilder) WithUser(userID uuid.UUID) *ReservationBuilder {
	b.UserID = userID
	return b
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildReconstructed() *domreservation.Reservation {
	return domreservation.ReconstructReservation(
		b.ID, b.BookID, b.UserID,
		b.ReservationDate, b.ExpiryDate, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}
