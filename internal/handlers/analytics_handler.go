package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spendwise/internal/analytics"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// AnalyticsHandler serves derived statistics over a user's expenses.
type AnalyticsHandler struct {
	expenseService services.ExpenseServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(expenseService services.ExpenseServicer) *AnalyticsHandler {
	return &AnalyticsHandler{expenseService: expenseService}
}

// AnalyticsQuery holds the optional reference date for the time windows.
type AnalyticsQuery struct {
	AsOf string `form:"as_of" binding:"omitempty,expense_date"`
}

// CategoryTotal is a category paired with its summed amount.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AnalyticsResponse aggregates every derived statistic in one payload.
// Zero-valued fields are still emitted so the client can render empty
// states without special-casing missing keys.
type AnalyticsResponse struct {
	Total                float64                `json:"total"`
	Count                int                    `json:"count"`
	Average              float64                `json:"average"`
	TotalsByCategory     map[string]float64     `json:"totals_by_category"`
	MonthlySeries        []analytics.MonthPoint `json:"monthly_series"`
	MonthOverMonthChange float64                `json:"month_over_month_change"`
	TopCategory          *CategoryTotal         `json:"top_category"`
	LargestExpense       *models.Expense        `json:"largest_expense"`
	DistinctCategories   []string               `json:"distinct_categories"`
}

// GetAnalytics computes the full analytics payload
// @Summary     Get expense analytics
// @Description Get aggregate statistics, the 12-month spending series, and derived insights for the authenticated user
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "Reference date for the monthly windows (YYYY-MM-DD, defaults to today)"
// @Success     200 {object} Envelope{data=AnalyticsResponse} "Analytics"
// @Failure     400 {object} Envelope "Invalid reference date"
// @Failure     401 {object} Envelope "Unauthorized"
// @Failure     500 {object} Envelope "Server error"
// @Router      /analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	asOf := time.Now().UTC()
	if query.AsOf != "" {
		// Already validated by the expense_date binding.
		asOf, _ = time.Parse("2006-01-02", query.AsOf)
	}

	expenses, err := h.expenseService.ListByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := AnalyticsResponse{
		Total:                analytics.Total(expenses),
		Count:                len(expenses),
		Average:              analytics.Average(expenses),
		TotalsByCategory:     analytics.TotalsByCategory(expenses),
		MonthlySeries:        analytics.MonthlySeries(expenses, asOf),
		MonthOverMonthChange: analytics.MonthOverMonthChange(expenses, asOf),
		DistinctCategories:   analytics.DistinctCategories(expenses),
	}
	if category, amount, ok := analytics.TopCategory(expenses); ok {
		resp.TopCategory = &CategoryTotal{Category: category, Amount: amount}
	}
	if largest, ok := analytics.Largest(expenses); ok {
		resp.LargestExpense = &largest
	}

	respondData(c, http.StatusOK, resp)
}
