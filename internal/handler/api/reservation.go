package api

import (
	"errors"
	"net/http"
	"time"

	"bookhub/internal/domain/policy"
	"bookhub/internal/domain/user"
	reqdto "bookhub/internal/handler/dto/request"
	resdto "bookhub/internal/handler/dto/response"
	"bookhub/internal/handler/middleware"
	"bookhub/internal/pkg/errs"
	"bookhub/internal/usecase/commands"
	"bookhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultExpiryWindow = 48 * time.Hour

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Place an active hold at the desk on a member's behalf
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reservationCommands.Create(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Request reservation
// @Description Submit a hold request for the authenticated member
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestReservationRequest true "Requested book"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/request [post]
func (h *ReservationHandler) RequestReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RequestReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reservationCommands.Request(c.Request.Context(), userID, req.BookID)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Approve reservation request
// @Description Approve a pending hold; its expiry clock starts now
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) ApproveReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	if err := h.reservationCommands.Approve(c.Request.Context(), id); err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark reservation ready
// @Description Flag the hold for pickup; requires a copy on the shelf
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/ready [post]
func (h *ReservationHandler) MarkReservationReady(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	if err := h.reservationCommands.MarkReady(c.Request.Context(), id); err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Fulfill reservation
// @Description Hand over the held copy; the reservation closes and a loan opens
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/fulfill [post]
func (h *ReservationHandler) FulfillReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	loanID, err := h.reservationCommands.Fulfill(c.Request.Context(), id)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"loanId": loanID})
}

// @Summary Cancel reservation
// @Description Cancel an open hold; members cancel their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	if !h.authorizeReservationAccess(c, id) {
		return
	}
	if err := h.reservationCommands.Cancel(c.Request.Context(), id); err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Remove a closed reservation record
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	if err := h.reservationCommands.Delete(c.Request.Context(), id); err != nil {
		h.respondReservationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Expire overdue holds
// @Description Persist EXPIRED for every active hold past its expiry date
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} map[string]string
// @Router /reservations/expire-sweep [post]
func (h *ReservationHandler) ExpireSweep(c *gin.Context) {
	expired, err := h.reservationCommands.ExpireSweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	if !isStaffOrOwner(c, view.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary My reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/me [get]
func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.reservationQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Reservation queue for a book
// @Description List waiting holds in pickup order
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /books/{id}/reservations [get]
func (h *ReservationHandler) GetBookQueue(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	items, err := h.reservationQueries.QueueForBook(c.Request.Context(), bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Queue position
// @Description Zero-indexed position among waiting holds for the same book
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]int32
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/position [get]
func (h *ReservationHandler) GetQueuePosition(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	pos, err := h.reservationQueries.QueuePosition(c.Request.Context(), id)
	if err != nil {
		h.respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": pos})
}

// @Summary Expiring reservations
// @Description Active holds whose expiry falls within the next two days
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/expiring [get]
func (h *ReservationHandler) GetExpiringReservations(c *gin.Context) {
	items, err := h.reservationQueries.ListExpiringSoon(c.Request.Context(), defaultExpiryWindow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// authorizeReservationAccess lets staff act on any hold and members only on
// their own.
func (h *ReservationHandler) authorizeReservationAccess(c *gin.Context, reservationID uuid.UUID) bool {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return false
	}
	if role != user.RoleMember {
		return true
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), reservationID)
	if err != nil {
		h.respondReservationError(c, err)
		return false
	}

	userID, ok := middleware.GetUserID(c)
	if !ok || view.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return false
	}
	return true
}

func (h *ReservationHandler) respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, errs.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, errs.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, errs.ErrDuplicateReservation):
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already has an open reservation for this book",
		})
	case errors.Is(err, errs.ErrDuplicateActiveLoan):
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already has an active loan for this book",
		})
	case errors.Is(err, policy.ErrUserNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "User is not eligible to reserve",
		})
	case errors.Is(err, policy.ErrBookUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Book is not available",
		})
	case errors.Is(err, policy.ErrReservationLimit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation limit reached",
		})
	case errors.Is(err, policy.ErrLoanLimitReached):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Loan limit reached",
		})
	case errors.Is(err, errs.ErrInvalidReservationState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Operation not allowed in the reservation's current state",
		})
	case errors.Is(err, errs.ErrInvalidLoanState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Operation not allowed in the loan's current state",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseReservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
