package readstore

import (
	"context"

	"bookhub/internal/infra"
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, name, role, is_active FROM users WHERE id = $1`, id)

	var v queries.AuthorizedUserView
	if err := row.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive); err != nil {
		return nil, infra.ClassifyPgErr("failed to read user view", err)
	}
	return &v, nil
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, name, role, is_active, password_hash
		FROM users WHERE email = $1`,
		email,
	)

	var (
		v    queries.AuthorizedUserView
		hash string
	)
	if err := row.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive, &hash); err != nil {
		return nil, "", infra.ClassifyPgErr("failed to read user credentials", err)
	}
	return &v, hash, nil
}
