package request

type CreateBookRequest struct {
	ISBN        string `json:"isbn" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	TotalCopies int    `json:"total_copies" binding:"min=0"`
}

type ResizeBookRequest struct {
	TotalCopies int `json:"total_copies" binding:"min=0"`
}

type SetBookStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
