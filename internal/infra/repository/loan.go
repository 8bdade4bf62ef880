package repository

import (
	"context"
	"time"

	"bookhub/internal/domain/loan"
	"bookhub/internal/infra"
	"bookhub/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, book_id, user_id, loan_date, due_date, return_date, notes, status, renewal_count, created_at, updated_at`

type LoanRepository struct {
	dbtx db.DBTX
}

func NewLoanRepository(dbtx db.DBTX) *LoanRepository {
	return &LoanRepository{dbtx: dbtx}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO loans (id, book_id, user_id, loan_date, due_date, return_date, notes, status, renewal_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID(), l.BookID(), l.UserID(), l.LoanDate(), l.DueDate(),
		l.ReturnDate(), l.Notes(), l.Status().String(), l.RenewalCount(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to insert loan", err)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
	return scanLoan(row)
}

func (r *LoanRepository) Save(ctx context.Context, l *loan.Loan) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE loans
		SET loan_date = $2, due_date = $3, return_date = $4, notes = $5,
		    status = $6, renewal_count = $7, updated_at = now()
		WHERE id = $1`,
		l.ID(), l.LoanDate(), l.DueDate(), l.ReturnDate(), l.Notes(),
		l.Status().String(), l.RenewalCount(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to update loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "loan not found for update", nil)
	}
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return infra.ClassifyPgErr("failed to delete loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "loan not found for delete", nil)
	}
	return nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var (
		id, bookID, userID   uuid.UUID
		loanDate, dueDate    time.Time
		returnDate           *time.Time
		notes                *string
		status               string
		renewalCount         int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &bookID, &userID, &loanDate, &dueDate, &returnDate, &notes, &status, &renewalCount, &createdAt, &updatedAt); err != nil {
		return nil, infra.ClassifyPgErr("failed to scan loan", err)
	}
	return loan.ReconstructLoan(
		id, bookID, userID,
		loanDate, dueDate, returnDate, notes,
		loan.Status(status), renewalCount,
		createdAt, updatedAt,
	), nil
}
