package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidISBN        = errors.New("invalid isbn")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrInvalidStatus      = errors.New("invalid book status")
	ErrInvalidCopyCount   = errors.New("copy count must not be negative")
	ErrNoAvailableCopies  = errors.New("no available copies")
	ErrInventoryCorrupted = errors.New("available copies exceed total copies")
)

// Book is the inventory ledger for one title. Copy counters are mutated only
// through the methods below; callers must hold the book row lock while doing so.
type Book struct {
	id              uuid.UUID
	isbn            string
	title           string
	author          string
	totalCopies     int
	availableCopies int
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBook(isbn, title, author string, totalCopies int) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, ErrInvalidISBN
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if totalCopies < 0 {
		return nil, ErrInvalidCopyCount
	}

	b := &Book{
		id:              uuid.New(),
		isbn:            isbn,
		title:           title,
		author:          author,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
	}
	b.recomputeStatus()
	return b, nil
}

// ReconstructBook rebuilds a persisted book without re-validating invariants.
func ReconstructBook(
	id uuid.UUID,
	isbn, title, author string,
	totalCopies, availableCopies int,
	status Status,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:              id,
		isbn:            isbn,
		title:           title,
		author:          author,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Book) IsAvailable() bool {
	return b.availableCopies > 0 && b.status == StatusAvailable
}

// BorrowCopy hands out one copy. Taking the last copy flips the status to
// BORROWED so the title reads as checked out.
func (b *Book) BorrowCopy() error {
	if b.availableCopies > b.totalCopies {
		return ErrInventoryCorrupted
	}
	if b.availableCopies <= 0 {
		return ErrNoAvailableCopies
	}

	b.availableCopies--
	if b.availableCopies == 0 {
		b.status = StatusBorrowed
	}
	return nil
}

// ReturnCopy puts one copy back on the shelf, capped at the total. A capped
// return is tolerated rather than rejected so a double return cannot corrupt
// the counters.
func (b *Book) ReturnCopy() {
	if b.availableCopies < b.totalCopies {
		b.availableCopies++
	}
	if b.status == StatusBorrowed && b.availableCopies > 0 {
		b.status = StatusAvailable
	}
}

// Resize changes the total copy count, shifting availability by the same
// delta. Shrinking below the number of copies currently out clamps available
// at zero; the outstanding loans keep their claim on the removed copies.
func (b *Book) Resize(newTotal int) error {
	if newTotal < 0 {
		return ErrInvalidCopyCount
	}

	delta := newTotal - b.totalCopies
	b.totalCopies = newTotal
	b.availableCopies += delta
	if b.availableCopies < 0 {
		b.availableCopies = 0
	}
	if b.availableCopies > b.totalCopies {
		b.availableCopies = b.totalCopies
	}
	b.recomputeStatus()
	return nil
}

// WriteOff removes one committed copy from the inventory, used when an
// outstanding loan is declared lost. Available copies are untouched since the
// written-off copy was already out.
func (b *Book) WriteOff() {
	if b.totalCopies > 0 {
		b.totalCopies--
	}
	if b.availableCopies > b.totalCopies {
		b.availableCopies = b.totalCopies
	}
	b.recomputeStatus()
}

// SetStatus overrides the circulation status, used by librarians to pull a
// title for maintenance or declare the whole title lost.
func (b *Book) SetStatus(s Status) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	b.status = s
	return nil
}

func (b *Book) recomputeStatus() {
	// Manual holds survive resizes and write-offs.
	if b.status == StatusUnderMaintenance || b.status == StatusLost || b.status == StatusReserved {
		return
	}
	if b.availableCopies > 0 {
		b.status = StatusAvailable
	} else {
		b.status = StatusBorrowed
	}
}

func (b *Book) ID() uuid.UUID        { return b.id }
func (b *Book) ISBN() string         { return b.isbn }
func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) TotalCopies() int     { return b.totalCopies }
func (b *Book) AvailableCopies() int { return b.availableCopies }
func (b *Book) Status() Status       { return b.status }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }
