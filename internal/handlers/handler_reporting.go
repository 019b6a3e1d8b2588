package handlers

import (
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregated reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers read-only reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/exchanges", h.exchangeReport)
		reports.GET("/internal-transactions", h.internalTransactionReport)
		reports.GET("/ledger", h.ledgerReport)
	}
}

// exchangeReport godoc
// @Summary Exchange volume and commission totals per currency
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ExchangeReportResponse
// @Security BearerAuth
// @Router /reports/exchanges [get]
func (h *reportingHandler) exchangeReport(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: " + err.Error()})
		return
	}

	totals, err := h.reportingService.ExchangeReport(c.Request.Context(), tenantID, params.ToPeriod())
	if err != nil {
		respondServiceError(c, err, "build exchange report")
		return
	}
	c.JSON(http.StatusOK, dto.ExchangeReportResponse{Totals: totals})
}

// internalTransactionReport godoc
// @Summary Cash movement totals per currency and type
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.InternalTransactionReportResponse
// @Security BearerAuth
// @Router /reports/internal-transactions [get]
func (h *reportingHandler) internalTransactionReport(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: " + err.Error()})
		return
	}

	totals, err := h.reportingService.InternalTransactionReport(c.Request.Context(), tenantID, params.ToPeriod())
	if err != nil {
		respondServiceError(c, err, "build internal transaction report")
		return
	}
	c.JSON(http.StatusOK, dto.InternalTransactionReportResponse{Totals: totals})
}

// ledgerReport godoc
// @Summary Outstanding obligation totals per currency, type and status
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.LedgerReportResponse
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportingHandler) ledgerReport(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	totals, err := h.reportingService.LedgerReport(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err, "build ledger report")
		return
	}
	c.JSON(http.StatusOK, dto.LedgerReportResponse{Totals: totals})
}
