package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grana/internal/analytics"
	apperrors "grana/internal/errors"
	"grana/internal/services"
)

// ReportHandler handles dashboard aggregate requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GrowthQuery represents the query parameters of the growth report.
type GrowthQuery struct {
	Year     int    `form:"year"`
	Filter   string `form:"filter" binding:"omitempty,growth_filter"`
	Category string `form:"category" binding:"omitempty,max=100"`
}

// GetMonthlySummary returns a year's twelve monthly aggregates.
// @Summary     Monthly summary
// @Description Income, expense, balance, interest, and per-category totals for each month of a year
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (default current)"
// @Success     200 {array} analytics.MonthAggregate "Monthly aggregates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseQueryInt(c, "year", time.Now().Year())
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.MonthlySummary(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetInterest returns one month's interest breakdown.
// @Summary     Interest breakdown
// @Description Total interest paid in a month and its split per category
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int true  "Zero-based month"
// @Success     200 {object} analytics.InterestBreakdown "Interest breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/interest [get]
func (h *ReportHandler) GetInterest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
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
	if month == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required"))
		return
	}

	breakdown, err := h.reportService.Interest(userID, year, *month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interest": breakdown})
}

// GetCategories returns one month's spending per category.
// @Summary     Category totals
// @Description Spending per normalized category for a month, overflow merged into "Outros"
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int true  "Zero-based month"
// @Param       limit query int false "Maximum categories before merging (default 10)"
// @Success     200 {object} map[string]decimal.Decimal "Totals per category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
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
	if month == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required"))
		return
	}
	limit, err := parseQueryInt(c, "limit", analytics.TopFlatCategories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.Categories(userID, year, *month, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetProjection returns the forward installment commitment series.
// @Summary     Installment projection
// @Description Committed unsettled installment totals for the coming months
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year    query int false "Starting year (default current)"
// @Param       month   query int false "Starting zero-based month (default current)"
// @Param       horizon query int false "Months ahead (default 6)"
// @Success     200 {object} analytics.Projection "Projection series"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/projection [get]
func (h *ReportHandler) GetProjection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	year, err := parseQueryInt(c, "year", now.Year())
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseQueryMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	fromMonth := int(now.Month()) - 1
	if month != nil {
		fromMonth = *month
	}
	horizon, err := parseQueryInt(c, "horizon", analytics.DefaultProjectionMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projection, err := h.reportService.Projection(userID, fromMonth, year, horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// GetGrowth returns the month-over-month growth series per category.
// @Summary     Category growth
// @Description Month-over-month spending growth per category, filtered for display
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year     query int    false "Year (default current)"
// @Param       filter   query string false "Display filter: all, top5, positive, or single"
// @Param       category query string false "Category to pin when filter=single"
// @Success     200 {object} map[string][]decimal.Decimal "Growth series per category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/growth [get]
func (h *ReportHandler) GetGrowth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query GrowthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if query.Year == 0 {
		query.Year = time.Now().Year()
	}

	filter := analytics.FilterState{
		Mode:     analytics.FilterMode(query.Filter),
		Category: query.Category,
	}
	if filter.Mode == "" {
		filter.Mode = analytics.FilterAll
	}
	if filter.Mode == analytics.FilterSingle && filter.Category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required when filter=single"))
		return
	}

	series, err := h.reportService.Growth(userID, query.Year, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"growth": series})
}
