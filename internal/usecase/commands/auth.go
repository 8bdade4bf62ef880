package commands

import (
	"context"

	"bookhub/internal/domain/user"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/pkg/jwt"
	"bookhub/internal/pkg/password"
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrUserInactive         = errs.New("user inactive")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	credEmail, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	view, hash, err := a.readStore.FindByEmail(ctx, credEmail.Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hash, rawPassword); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      view.ID,
		AccessToken: token,
	}, nil
}
