package readstore

import (
	"context"
	"time"

	"bookhub/internal/infra"
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LoanReadStore struct {
	pool *pgxpool.Pool
}

func NewLoanReadStore(pool *pgxpool.Pool) *LoanReadStore {
	return &LoanReadStore{pool: pool}
}

func (s *LoanReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LoanView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT l.id, l.book_id, b.title, l.user_id, u.email,
		       l.loan_date, l.due_date, l.return_date, l.notes,
		       l.status, l.renewal_count, l.created_at, l.updated_at
		FROM loans l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1`,
		id,
	)

	var v queries.LoanView
	if err := row.Scan(
		&v.ID, &v.BookID, &v.BookTitle, &v.UserID, &v.UserEmail,
		&v.LoanDate, &v.DueDate, &v.ReturnDate, &v.Notes,
		&v.Status, &v.RenewalCount, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, infra.ClassifyPgErr("failed to read loan view", err)
	}
	return &v, nil
}

func (s *LoanReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.LoanListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.book_id, b.title, l.user_id, l.due_date, l.status, l.created_at
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, l.id`,
		userID,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list loans by user", err)
	}
	return collectLoanItems(rows)
}

func (s *LoanReadStore) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*queries.LoanListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.book_id, b.title, l.user_id, l.due_date, l.status, l.created_at
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.book_id = $1
		ORDER BY l.created_at DESC, l.id`,
		bookID,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list loans by book", err)
	}
	return collectLoanItems(rows)
}

func (s *LoanReadStore) FindActiveDueBefore(ctx context.Context, t time.Time) ([]*queries.LoanListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.book_id, b.title, l.user_id, l.due_date, l.status, l.created_at
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.status = 'ACTIVE' AND l.due_date < $1
		ORDER BY l.due_date, l.id`,
		t,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list overdue loans", err)
	}
	return collectLoanItems(rows)
}

func collectLoanItems(rows pgx.Rows) ([]*queries.LoanListItem, error) {
	defer rows.Close()

	items := make([]*queries.LoanListItem, 0)
	for rows.Next() {
		var item queries.LoanListItem
		if err := rows.Scan(
			&item.ID, &item.BookID, &item.BookTitle, &item.UserID,
			&item.DueDate, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan loan item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to iterate loan items", err)
	}
	return items, nil
}
