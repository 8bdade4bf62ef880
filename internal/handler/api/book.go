package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "bookhub/internal/handler/dto/request"
	resdto "bookhub/internal/handler/dto/response"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/commands"
	"bookhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// @Summary Register book
// @Description Add a new title to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Book details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.bookCommands.Create(c.Request.Context(), req.ISBN, req.Title, req.Author, req.TotalCopies)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Get book
// @Description Get book by ID
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	view, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondBookError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary List books
// @Description List catalog entries ordered by title, or search when q is given
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param q query string false "Keyword matched against title, author and ISBN"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.BookResponse
// @Failure 401 {object} map[string]string
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	limit := parseInt32(c.Query("limit"), 50)
	offset := parseInt32(c.Query("offset"), 0)

	var (
		views []*queries.BookView
		err   error
	)
	if keyword := c.Query("q"); keyword != "" {
		views, err = h.bookQueries.Search(c.Request.Context(), keyword, limit)
	} else {
		views, err = h.bookQueries.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookViews(views))
}

// @Summary Resize inventory
// @Description Change a book's total copy count
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.ResizeBookRequest true "New total"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id}/copies [put]
func (h *BookHandler) ResizeBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.ResizeBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.bookCommands.Resize(c.Request.Context(), id, req.TotalCopies); err != nil {
		h.respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Set book status
// @Description Place or lift a manual hold such as UNDER_MAINTENANCE
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.SetBookStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id}/status [put]
func (h *BookHandler) SetBookStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.SetBookStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.bookCommands.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete book
// @Description Remove a book with no open loans or reservations
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	if err := h.bookCommands.Delete(c.Request.Context(), id); err != nil {
		h.respondBookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookHandler) respondBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, errs.ErrBookStillReferenced):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Book has open loans or reservations",
		})
	case errors.Is(err, commands.ErrInvalidBookInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return fallback
	}
	return int32(n)
}
