package repository

import (
	"context"
	"time"

	"bookhub/internal/domain/user"
	"bookhub/internal/infra"
	"bookhub/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	dbtx db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{dbtx: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Name(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.dbtx.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, is_active, created_at, updated_at
		FROM users WHERE email = $1`,
		email,
	)

	var (
		id                   uuid.UUID
		rawEmail             string
		passwordHash, name   string
		role                 string
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &rawEmail, &passwordHash, &name, &role, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, infra.ClassifyPgErr("failed to scan user", err)
	}

	emailVO, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored email is invalid", err)
	}
	return user.ReconstructUser(
		id, emailVO, passwordHash, name, user.Role(role), isActive,
		createdAt, updatedAt,
	), nil
}
