package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense CRUD requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,expense_category"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required,expense_date"`
}

// UpdateExpenseRequest represents the request payload for updating an
// expense. Absent fields are left untouched.
type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category    *string  `json:"category" binding:"omitempty,expense_category"`
	Description *string  `json:"description" binding:"omitempty,min=1"`
	Date        *string  `json:"date" binding:"omitempty,expense_date"`
}

// ListExpensesQuery holds the optional list filters.
type ListExpensesQuery struct {
	From     string `form:"from" binding:"omitempty,expense_date"`
	To       string `form:"to" binding:"omitempty,expense_date"`
	Category string `form:"category" binding:"omitempty,expense_category"`
	GroupBy  string `form:"group_by" binding:"omitempty,oneof=category"`
}

// ListExpenses handles listing the user's expenses
// @Summary     List expenses
// @Description List the authenticated user's expenses, optionally filtered by inclusive date range or category, or grouped by category
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Range start (YYYY-MM-DD, inclusive)"
// @Param       to query string false "Range end (YYYY-MM-DD, inclusive)"
// @Param       category query string false "Filter by category"
// @Param       group_by query string false "Set to 'category' to return a category-keyed partition"
// @Success     200 {object} Envelope{data=[]models.Expense} "Expenses"
// @Failure     400 {object} Envelope "Invalid filter"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     500 {object} Envelope "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	if (query.From == "") != (query.To == "") {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to must be provided together"))
		return
	}

	if query.GroupBy == "category" {
		grouped, err := h.expenseService.ByCategory(userID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		respondData(c, http.StatusOK, grouped)
		return
	}

	var expenses []models.Expense
	if query.From != "" {
		expenses, err = h.expenseService.ByDateRange(userID, query.From, query.To)
	} else {
		expenses, err = h.expenseService.ListByUser(userID)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	if query.Category != "" {
		filtered := []models.Expense{}
		for _, e := range expenses {
			if e.Category == query.Category {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}

	respondData(c, http.StatusOK, expenses)
}

// GetExpense handles the retrieval of a single expense
// @Summary     Get expense by ID
// @Description Get one of the authenticated user's expenses by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} Envelope{data=models.Expense} "Expense"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     404 {object} Envelope "Expense not found"
// @Failure     500 {object} Envelope "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, expense)
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} Envelope{data=models.Expense} "Expense created"
// @Failure     400 {object} Envelope "Invalid input"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     500 {object} Envelope "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	expense, err := h.expenseService.Create(userID, models.CreateExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusCreated, expense)
}

// UpdateExpense handles a partial update of an expense
// @Summary     Update an expense
// @Description Update any subset of an expense's amount, category, description, and date
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} Envelope{data=models.Expense} "Updated expense"
// @Failure     400 {object} Envelope "Invalid input"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     404 {object} Envelope "Expense not found"
// @Failure     500 {object} Envelope "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	expense, err := h.expenseService.Update(c.Param("id"), userID, models.UpdateExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, expense)
}

// DeleteExpense handles deleting an expense
// @Summary     Delete an expense
// @Description Delete one of the authenticated user's expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} Envelope "Expense deleted"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     404 {object} Envelope "Expense not found"
// @Failure     500 {object} Envelope "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.expenseService.Delete(c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !removed {
		respondWithError(c, apperrors.ErrExpenseNotFound)
		return
	}

	respondNoData(c, http.StatusOK)
}
