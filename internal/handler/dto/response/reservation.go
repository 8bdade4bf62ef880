package response

import (
	"time"

	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID              uuid.UUID `json:"id"`
	BookID          uuid.UUID `json:"bookId"`
	BookTitle       string    `json:"bookTitle"`
	UserID          uuid.UUID `json:"userId"`
	UserEmail       string    `json:"userEmail"`
	ReservationDate time.Time `json:"reservationDate"`
	ExpiryDate      time.Time `json:"expiryDate"`
	Status          string    `json:"status"`
	QueuePosition   *int32    `json:"queuePosition,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID              uuid.UUID `json:"id"`
	BookID          uuid.UUID `json:"bookId"`
	BookTitle       string    `json:"bookTitle"`
	UserID          uuid.UUID `json:"userId"`
	ReservationDate time.Time `json:"reservationDate"`
	ExpiryDate      time.Time `json:"expiryDate"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              v.ID,
		BookID:          v.BookID,
		BookTitle:       v.BookTitle,
		UserID:          v.UserID,
		UserEmail:       v.UserEmail,
		ReservationDate: v.ReservationDate,
		ExpiryDate:      v.ExpiryDate,
		Status:          v.Status,
		QueuePosition:   v.QueuePosition,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromReservationListItems(items []*queries.ReservationListItem) []*ReservationListResponse {
	out := make([]*ReservationListResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &ReservationListResponse{
			ID:              item.ID,
			BookID:          item.BookID,
			BookTitle:       item.BookTitle,
			UserID:          item.UserID,
			ReservationDate: item.ReservationDate,
			ExpiryDate:      item.ExpiryDate,
			Status:          item.Status,
			CreatedAt:       item.CreatedAt,
		})
	}
	return out
}
