package request

import "github.com/google/uuid"

// CreateReservationRequest places a hold at the desk on a member's behalf.
type CreateReservationRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// RequestReservationRequest is the member self-service flow; the holder comes
// from the token.
type RequestReservationRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}
