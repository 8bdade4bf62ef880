package response

import (
	"time"

	"bookhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoanResponse struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"bookId"`
	BookTitle    string     `json:"bookTitle"`
	UserID       uuid.UUID  `json:"userId"`
	UserEmail    string     `json:"userEmail"`
	LoanDate     time.Time  `json:"loanDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	Status       string     `json:"status"`
	RenewalCount int32      `json:"renewalCount"`
	IsOverdue    bool       `json:"isOverdue"`
	DaysOverdue  int32      `json:"daysOverdue"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type LoanListResponse struct {
	ID          uuid.UUID `json:"id"`
	BookID      uuid.UUID `json:"bookId"`
	BookTitle   string    `json:"bookTitle"`
	UserID      uuid.UUID `json:"userId"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	IsOverdue   bool      `json:"isOverdue"`
	DaysOverdue int32     `json:"daysOverdue"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromLoanView(v *queries.LoanView) *LoanResponse {
	return &LoanResponse{
		ID:           v.ID,
		BookID:       v.BookID,
		BookTitle:    v.BookTitle,
		UserID:       v.UserID,
		UserEmail:    v.UserEmail,
		LoanDate:     v.LoanDate,
		DueDate:      v.DueDate,
		ReturnDate:   v.ReturnDate,
		Notes:        v.Notes,
		Status:       v.Status,
		RenewalCount: v.RenewalCount,
		IsOverdue:    v.IsOverdue,
		DaysOverdue:  v.DaysOverdue,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromLoanListItems(items []*queries.LoanListItem) []*LoanListResponse {
	out := make([]*LoanListResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &LoanListResponse{
			ID:          item.ID,
			BookID:      item.BookID,
			BookTitle:   item.BookTitle,
			UserID:      item.UserID,
			DueDate:     item.DueDate,
			Status:      item.Status,
			IsOverdue:   item.IsOverdue,
			DaysOverdue: item.DaysOverdue,
			CreatedAt:   item.CreatedAt,
		})
	}
	return out
}
