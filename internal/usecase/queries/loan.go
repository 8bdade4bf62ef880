package queries

import (
	"context"
	"time"

	"bookhub/internal/domain/loan"
	"bookhub/internal/infra"
	"bookhub/internal/pkg/clock"
	"bookhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type LoanQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*LoanListItem, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*LoanListItem, error)
	// ListOverdue returns active loans whose due date has passed. OVERDUE is
	// derived here, never persisted.
	ListOverdue(ctx context.Context) ([]*LoanListItem, error)
}

type LoanViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*LoanListItem, error)
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*LoanListItem, error)
	FindActiveDueBefore(ctx context.Context, t time.Time) ([]*LoanListItem, error)
}

type loanQueriesImpl struct {
	repo  LoanViewRepo
	clock clock.Clock
}

func NewLoanQueries(repo LoanViewRepo, clk clock.Clock) LoanQueries {
	return &loanQueriesImpl{repo: repo, clock: clk}
}

func (q *loanQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrLoanNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	q.decorateView(view)
	return view, nil
}

func (q *loanQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*LoanListItem, error) {
	items, err := q.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	q.decorateItems(items)
	return items, nil
}

func (q *loanQueriesImpl) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*LoanListItem, error) {
	items, err := q.repo.FindByBookID(ctx, bookID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	q.decorateItems(items)
	return items, nil
}

func (q *loanQueriesImpl) ListOverdue(ctx context.Context) ([]*LoanListItem, error) {
	items, err := q.repo.FindActiveDueBefore(ctx, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	q.decorateItems(items)
	return items, nil
}

func (q *loanQueriesImpl) decorateView(v *LoanView) {
	overdue, days := deriveOverdue(v.Status, v.DueDate, q.clock.Now())
	v.IsOverdue = overdue
	v.DaysOverdue = days
}

func (q *loanQueriesImpl) decorateItems(items []*LoanListItem) {
	now := q.clock.Now()
	for _, item := range items {
		overdue, days := deriveOverdue(item.Status, item.DueDate, now)
		item.IsOverdue = overdue
		item.DaysOverdue = days
	}
}

func deriveOverdue(status string, dueDate, now time.Time) (bool, int32) {
	if status != loan.StatusActive.String() || !now.After(dueDate) {
		return false, 0
	}
	return true, int32(now.Sub(dueDate).Hours() / 24)
}
