package readstore

import (
	"context"

	"bookhub/internal/infra"
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookViewColumns = `id, isbn, title, author, total_copies, available_copies, status, created_at, updated_at`

type BookReadStore struct {
	pool *pgxpool.Pool
}

func NewBookReadStore(pool *pgxpool.Pool) *BookReadStore {
	return &BookReadStore{pool: pool}
}

func (s *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+bookViewColumns+` FROM books WHERE id = $1`, id)

	var v queries.BookView
	if err := row.Scan(
		&v.ID, &v.ISBN, &v.Title, &v.Author,
		&v.TotalCopies, &v.AvailableCopies, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, infra.ClassifyPgErr("failed to read book view", err)
	}
	return &v, nil
}

func (s *BookReadStore) FindAll(ctx context.Context, limit, offset int32) ([]*queries.BookView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookViewColumns+`
		FROM books
		ORDER BY title, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list books", err)
	}
	defer rows.Close()

	views := make([]*queries.BookView, 0)
	for rows.Next() {
		var v queries.BookView
		if err := rows.Scan(
			&v.ID, &v.ISBN, &v.Title, &v.Author,
			&v.TotalCopies, &v.AvailableCopies, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan book view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to iterate book views", err)
	}
	return views, nil
}

func (s *BookReadStore) SearchByKeyword(ctx context.Context, keyword string, limit int32) ([]*queries.BookView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookViewColumns+`
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		   OR author ILIKE '%' || $1 || '%'
		   OR isbn = $1
		ORDER BY title, id
		LIMIT $2`,
		keyword, limit,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to search books", err)
	}
	defer rows.Close()

	views := make([]*queries.BookView, 0)
	for rows.Next() {
		var v queries.BookView
		if err := rows.Scan(
			&v.ID, &v.ISBN, &v.Title, &v.Author,
			&v.TotalCopies, &v.AvailableCopies, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan book view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to iterate book views", err)
	}
	return views, nil
}
