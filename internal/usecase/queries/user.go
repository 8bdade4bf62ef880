package queries

import (
	"context"

	"bookhub/internal/infra"
	"bookhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetAuthorizedUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type UserViewRepo interface {
	FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

// UserReadStore is the credential lookup used by the login command. The hash
// never leaves the auth path.
type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	repo UserViewRepo
}

func NewUserQueries(repo UserViewRepo) UserQueries {
	return &userQueriesImpl{repo: repo}
}

func (q *userQueriesImpl) GetAuthorizedUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.repo.FindAuthorizedByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
