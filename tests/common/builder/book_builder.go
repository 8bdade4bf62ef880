//go:build unit || e2e

package builder

import (
	"time"

	dombook "bookhub/internal/domain/book"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID              uuid.UUID
	ISBN            string
	Title           string
	Author          string
	TotalCopies     int
	AvailableCopies int
	Status          dombook.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookBuilder() *BookBuilder {
	now := time.Now()
	return &BookBuilder{
		ID:              uuid.New(),
		ISBN:            "978-0134190440",
		Title:           "The Go Programming Language",
		Author:          "Donovan, Kernighan",
		TotalCopies:     3,
		AvailableCopies: 3,
		Status:          dombook.StatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.ISBN = isbn
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithCopies(total, available int) *BookBuilder {
	b.TotalCopies = total
	b.AvailableCopies = available
	return b
}

func (b *BookBuilder) WithStatus(status dombook.Status) *BookBuilder {
	b.Status = status
	return b
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

// BuildDomain runs the constructor, so available always starts equal to total.
func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	return dombook.NewBook(b.ISBN, b.Title, b.Author, b.TotalCopies)
}

// BuildReconstructed bypasses the constructor to produce arbitrary persisted
// states, including ones mid-circulation.
func (b *BookBuilder) BuildReconstructed() *dombook.Book {
	return dombook.ReconstructBook(
		b.ID, b.ISBN, b.Title, b.Author,
		b.TotalCopies, b.AvailableCopies, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}
