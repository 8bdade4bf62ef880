package queries

import (
	"context"

	"bookhub/internal/infra"
	"bookhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context, limit, offset int32) ([]*BookView, error)
	Search(ctx context.Context, keyword string, limit int32) ([]*BookView, error)
}

type BookViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	FindAll(ctx context.Context, limit, offset int32) ([]*BookView, error)
	SearchByKeyword(ctx context.Context, keyword string, limit int32) ([]*BookView, error)
}

type bookQueriesImpl struct {
	repo BookViewRepo
}

func NewBookQueries(repo BookViewRepo) BookQueries {
	return &bookQueriesImpl{repo: repo}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookQueriesImpl) List(ctx context.Context, limit, offset int32) ([]*BookView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	views, err := q.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *bookQueriesImpl) Search(ctx context.Context, keyword string, limit int32) ([]*BookView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	views, err := q.repo.SearchByKeyword(ctx, keyword, limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
