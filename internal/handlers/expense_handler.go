package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/pagination"
	"grana/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an
// expense. Setting installment_total above one expands the purchase into
// that many monthly parcels.
type CreateExpenseRequest struct {
	Description       string               `json:"description" binding:"required,min=1,max=200"`
	Category          string               `json:"category" binding:"max=100"`
	CardCategory      string               `json:"card_category" binding:"max=100"`
	PaymentMethod     models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	CardNumber        *int                 `json:"card_number" binding:"omitempty,card_number"`
	Amount            decimal.Decimal      `json:"amount"`
	OriginalAmount    *decimal.Decimal     `json:"original_amount"`
	TotalWithInterest *decimal.Decimal     `json:"total_with_interest"`
	PurchaseDate      time.Time            `json:"purchase_date"`
	DueDate           time.Time            `json:"due_date"`
	Month             int                  `json:"month" binding:"month"`
	Year              int                  `json:"year" binding:"required"`
	Recurring         bool                 `json:"recurring"`
	InstallmentTotal  int                  `json:"installment_total" binding:"omitempty,min=1,max=60"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	Description   *string               `json:"description" binding:"omitempty,min=1,max=200"`
	Category      *string               `json:"category" binding:"omitempty,max=100"`
	CardCategory  *string               `json:"card_category" binding:"omitempty,max=100"`
	PaymentMethod *models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	CardNumber    *int                  `json:"card_number" binding:"omitempty,card_number"`
	Amount        *decimal.Decimal      `json:"amount"`
	DueDate       *time.Time            `json:"due_date"`
	Recurring     *bool                 `json:"recurring"`
}

// SettleExpenseRequest represents the request payload for settling an expense.
type SettleExpenseRequest struct {
	AmountPaid  *decimal.Decimal `json:"amount_paid"`
	PaymentDate time.Time        `json:"payment_date"`
}

// CreateExpense handles the creation of a new expense or installment purchase.
// @Summary     Create an expense
// @Description Create an expense; installment_total > 1 expands the purchase into monthly parcels sharing a group ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {array} models.Expense "Created records (one per parcel)"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.CreateExpenseInput{
		Description:      req.Description,
		Category:         req.Category,
		CardCategory:     req.CardCategory,
		PaymentMethod:    req.PaymentMethod,
		CardNumber:       req.CardNumber,
		Amount:           req.Amount,
		PurchaseDate:     req.PurchaseDate,
		DueDate:          req.DueDate,
		Month:            req.Month,
		Year:             req.Year,
		Recurring:        req.Recurring,
		InstallmentTotal: req.InstallmentTotal,
	}
	if req.OriginalAmount != nil {
		in.OriginalAmount = decimal.NewNullDecimal(*req.OriginalAmount)
	}
	if req.TotalWithInterest != nil {
		in.TotalWithInterest = decimal.NewNullDecimal(*req.TotalWithInterest)
	}

	records, err := h.expenseService.CreateExpense(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expenses": records})
}

// GetExpenses handles listing expenses for a year, optionally one month.
// @Summary     Get expenses
// @Description Get a paginated list of expenses for a year, optionally narrowed to a month
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       year      query int    true  "Year"
// @Param       month     query int    false "Zero-based month"
// @Param       category  query string false "Filter by category"
// @Param       settled   query bool   false "Filter by settled status"
// @Param       parcels   query bool   false "Only installment parcels"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year, err := parseQueryInt(c, "year", time.Now().Year())
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseQueryMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.ExpenseFilter
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("settled"); v != "" {
		switch v {
		case "true":
			b := true
			filter.Settled = &b
		case "false":
			b := false
			filter.Settled = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "settled must be 'true' or 'false'"))
			return
		}
	}
	filter.OnlyParcels = c.Query("parcels") == "true"

	result, err := h.expenseService.GetUserExpenses(userID, year, month, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles updating an expense.
// @Summary     Update an expense
// @Description Update an expense's editable fields
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} models.Expense "Expense updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, c.Param("id"), services.UpdateExpenseInput{
		Description:   req.Description,
		Category:      req.Category,
		CardCategory:  req.CardCategory,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		Recurring:     req.Recurring,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// SettleExpense handles marking an expense as paid.
// @Summary     Settle an expense
// @Description Mark an expense as paid, recording the paid amount and payment date
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body SettleExpenseRequest true "Settlement details"
// @Success     200 {object} models.Expense "Expense settled"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/settle [post]
func (h *ExpenseHandler) SettleExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettleExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var paid decimal.NullDecimal
	if req.AmountPaid != nil {
		paid = decimal.NewNullDecimal(*req.AmountPaid)
	}

	expense, err := h.expenseService.SettleExpense(userID, c.Param("id"), paid, req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete an expense
// @Description Delete an expense; installment parcels are renumbered through the group engine
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
