package repository

import (
	"context"
	"time"

	"bookhub/internal/domain/book"
	"bookhub/internal/infra"
	"bookhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookColumns = `id, isbn, title, author, total_copies, available_copies, status, created_at, updated_at`

type BookRepository struct {
	dbtx db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{dbtx: dbtx}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO books (id, isbn, title, author, total_copies, available_copies, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID(), b.ISBN(), b.Title(), b.Author(), b.TotalCopies(), b.AvailableCopies(), b.Status().String(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to insert book", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	return scanBook(row)
}

// FindByIDForUpdate locks the book row until the transaction ends. All copy
// counter mutations for one book serialize on this lock.
func (r *BookRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id)
	return scanBook(row)
}

func (r *BookRepository) Save(ctx context.Context, b *book.Book) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE books
		SET isbn = $2, title = $3, author = $4,
		    total_copies = $5, available_copies = $6, status = $7,
		    updated_at = now()
		WHERE id = $1`,
		b.ID(), b.ISBN(), b.Title(), b.Author(), b.TotalCopies(), b.AvailableCopies(), b.Status().String(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "book not found for update", nil)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return infra.ClassifyPgErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "book not found for delete", nil)
	}
	return nil
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		id                       uuid.UUID
		isbn, title, author      string
		totalCopies, availCopies int
		status                   string
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &isbn, &title, &author, &totalCopies, &availCopies, &status, &createdAt, &updatedAt); err != nil {
		return nil, infra.ClassifyPgErr("failed to scan book", err)
	}
	return book.ReconstructBook(
		id, isbn, title, author,
		totalCopies, availCopies, book.Status(status),
		createdAt, updatedAt,
	), nil
}
