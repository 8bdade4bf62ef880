package api

import (
	"errors"
	"net/http"

	"bookhub/internal/domain/loan"
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

type LoanHandler struct {
	loanCommands commands.LoanCommands
	loanQueries  queries.LoanQueries
}

func NewLoanHandler(loanCommands commands.LoanCommands, loanQueries queries.LoanQueries) *LoanHandler {
	return &LoanHandler{
		loanCommands: loanCommands,
		loanQueries:  loanQueries,
	}
}

// @Summary Create loan
// @Description Issue a loan at the desk; the copy is checked out immediately
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLoanRequest true "Loan details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req reqdto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.loanCommands.Create(c.Request.Context(), req.UserID, req.BookID, req.DueDate)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Request loan
// @Description Submit a borrowing request for the authenticated member
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestLoanRequest true "Requested book"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/request [post]
func (h *LoanHandler) RequestLoan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RequestLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.loanCommands.Request(c.Request.Context(), userID, req.BookID)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Approve loan request
// @Description Approve a pending request; the copy leaves the shelf now
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id}/approve [post]
func (h *LoanHandler) ApproveLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}
	if err := h.loanCommands.Approve(c.Request.Context(), id); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reject loan request
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id}/reject [post]
func (h *LoanHandler) RejectLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}
	if err := h.loanCommands.Reject(c.Request.Context(), id); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Renew loan
// @Description Extend an active loan by one period; members renew their own
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id}/renew [post]
func (h *LoanHandler) RenewLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}
	if !h.authorizeLoanAccess(c, id) {
		return
	}
	if err := h.loanCommands.Renew(c.Request.Context(), id); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Return loan
// @Description Close the loan and restock the copy; the earliest waiting reservation is promoted
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param request body reqdto.ReturnLoanRequest false "Optional return notes"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id}/return [post]
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	var req reqdto.ReturnLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	if err := h.loanCommands.Return(c.Request.Context(), id, req.Notes); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark loan lost
// @Description Close the loan as lost and write the copy off the inventory
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id}/lost [post]
func (h *LoanHandler) MarkLoanLost(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}
	if err := h.loanCommands.MarkLost(c.Request.Context(), id); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete loan
// @Description Remove a closed loan record
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}
	if err := h.loanCommands.Delete(c.Request.Context(), id); err != nil {
		h.respondLoanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	view, err := h.loanQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLoanError(c, err)
		return
	}

	if !isStaffOrOwner(c, view.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanView(view))
}

// @Summary My loans
// @Description List the authenticated member's loans, newest first
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LoanListResponse
// @Failure 401 {object} map[string]string
// @Router /loans/me [get]
func (h *LoanHandler) GetMyLoans(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.loanQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanListItems(items))
}

// @Summary Loans for a book
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {array} resdto.LoanListResponse
// @Failure 400 {object} map[string]string
// @Router /books/{id}/loans [get]
func (h *LoanHandler) GetBookLoans(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	items, err := h.loanQueries.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanListItems(items))
}

// @Summary Overdue loans
// @Description List active loans past their due date
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LoanListResponse
// @Failure 401 {object} map[string]string
// @Router /loans/overdue [get]
func (h *LoanHandler) GetOverdueLoans(c *gin.Context) {
	items, err := h.loanQueries.ListOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoanListItems(items))
}

// authorizeLoanAccess lets staff act on any loan and members only on their own.
func (h *LoanHandler) authorizeLoanAccess(c *gin.Context, loanID uuid.UUID) bool {
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

	view, err := h.loanQueries.GetByID(c.Request.Context(), loanID)
	if err != nil {
		h.respondLoanError(c, err)
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

func (h *LoanHandler) respondLoanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Loan not found",
		})
	case errors.Is(err, errs.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, errs.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, errs.ErrDuplicateActiveLoan):
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already has an active loan for this book",
		})
	case errors.Is(err, errs.ErrDuplicateReservation):
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already has an open reservation for this book",
		})
	case errors.Is(err, loan.ErrInvalidDueDate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Due date must be in the future",
		})
	case errors.Is(err, policy.ErrUserNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "User is not eligible to borrow",
		})
	case errors.Is(err, policy.ErrBookUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Book is not available for loan",
		})
	case errors.Is(err, policy.ErrLoanLimitReached):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Loan limit reached",
		})
	case errors.Is(err, policy.ErrRenewalNotAllowed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Loan cannot be renewed",
		})
	case errors.Is(err, errs.ErrInvalidLoanState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Operation not allowed in the loan's current state",
		})
	case errors.Is(err, errs.ErrInvalidReservationState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Operation not allowed in the reservation's current state",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseLoanID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid loan ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func isStaffOrOwner(c *gin.Context, ownerID uuid.UUID) bool {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return false
	}
	if role != user.RoleMember {
		return true
	}
	userID, ok := middleware.GetUserID(c)
	return ok && userID == ownerID
}
