package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/wms/backend/internal/application/billing"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// StatementBuilder is the application-layer surface the billing endpoints need
type StatementBuilder interface {
	BuildStatement(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) (*billing.Statement, error)
	BuildMonthlyStatement(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) (*billing.Statement, error)
	BuildAnnualSummary(ctx context.Context, tenantID uuid.UUID, year int) (*appbilling.AnnualSummary, error)
}

// BillingHandler handles billing statement API endpoints
type BillingHandler struct {
	BaseHandler
	statements StatementBuilder
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(statements StatementBuilder) *BillingHandler {
	return &BillingHandler{statements: statements}
}

// RegisterRoutes registers billing routes on the given router group
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/billing")
	group.GET("/statement", h.GetStatement)
	group.GET("/statements/monthly", h.GetMonthlyStatement)
	group.GET("/statements/annual", h.GetAnnualSummary)
}

// StatementFilterRequest defines the filter for custom-period statements
type StatementFilterRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// MonthlyStatementRequest defines the filter for monthly statements
type MonthlyStatementRequest struct {
	Year  int `form:"year" binding:"required,min=2000,max=2200"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// AnnualSummaryRequest defines the filter for annual summaries
type AnnualSummaryRequest struct {
	Year int `form:"year" binding:"required,min=2000,max=2200"`
}

// GetStatement godoc
// @Summary      Get billing statement for a custom period
// @Description  Computes the full billing statement for the period between start_date and end_date inclusive
// @Tags         billing
// @Produce      json
// @Param        start_date query string true "Start date (YYYY-MM-DD)"
// @Param        end_date query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=billing.Statement}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/statement [get]
func (h *BillingHandler) GetStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req StatementFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	period, err := valueobject.NewPeriodFromStrings(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.statements.BuildStatement(c.Request.Context(), tenantID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// GetMonthlyStatement godoc
// @Summary      Get billing statement for a calendar month
// @Description  Computes the billing statement for the given year and month
// @Tags         billing
// @Produce      json
// @Param        year query int true "Year (e.g. 2024)"
// @Param        month query int true "Month (1-12)"
// @Success      200 {object} dto.Response{data=billing.Statement}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/statements/monthly [get]
func (h *BillingHandler) GetMonthlyStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req MonthlyStatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.statements.BuildMonthlyStatement(c.Request.Context(), tenantID, req.Year, time.Month(req.Month))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// GetAnnualSummary godoc
// @Summary      Get annual billing summary
// @Description  Computes per-month category totals for every month of the given year
// @Tags         billing
// @Produce      json
// @Param        year query int true "Year (e.g. 2024)"
// @Success      200 {object} dto.Response{data=appbilling.AnnualSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/statements/annual [get]
func (h *BillingHandler) GetAnnualSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req AnnualSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.statements.BuildAnnualSummary(c.Request.Context(), tenantID, req.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
