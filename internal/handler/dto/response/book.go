package response

import (
	"time"

	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int32     `json:"totalCopies"`
	AvailableCopies int32     `json:"availableCopies"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:              v.ID,
		ISBN:            v.ISBN,
		Title:           v.Title,
		Author:          v.Author,
		TotalCopies:     v.TotalCopies,
		AvailableCopies: v.AvailableCopies,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromBookViews(views []*queries.BookView) []*BookResponse {
	out := make([]*BookResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromBookView(v))
	}
	return out
}
