package response

import (
	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	AccessToken string    `json:"accessToken"`
}

type MeResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"isActive"`
}

func FromAuthorizedUserView(v *queries.AuthorizedUserView) *MeResponse {
	return &MeResponse{
		ID:       v.ID,
		Email:    v.Email,
		Name:     v.Name,
		Role:     v.Role,
		IsActive: v.IsActive,
	}
}
