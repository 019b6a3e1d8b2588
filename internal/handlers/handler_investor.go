package handlers

import (
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// investorHandler handles HTTP requests related to capital providers.
type investorHandler struct {
	investorService portssvc.InvestorSvcFacade
}

func newInvestorHandler(is portssvc.InvestorSvcFacade) *investorHandler {
	return &investorHandler{investorService: is}
}

// registerInvestorRoutes registers routes related to investors.
func registerInvestorRoutes(rg *gin.RouterGroup, investorService portssvc.InvestorSvcFacade) {
	h := newInvestorHandler(investorService)

	investors := rg.Group("/investors")
	{
		investors.POST("", middleware.RequireWriteRole(), h.createInvestor)
		investors.GET("", h.listInvestors)
		investors.GET("/:investorID", h.getInvestor)
		investors.PUT("/:investorID", middleware.RequireWriteRole(), h.updateInvestor)
		investors.GET("/:investorID/balance", h.getInvestorBalance)
	}
}

// createInvestor godoc
// @Summary Register a capital provider
// @Tags investors
// @Accept  json
// @Produce  json
// @Param   investor body dto.CreateInvestorRequest true "Investor details"
// @Success 201 {object} dto.InvestorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /investors [post]
func (h *investorHandler) createInvestor(c *gin.Context) {
	var req dto.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	investor, err := h.investorService.CreateInvestor(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create investor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvestorResponse(investor, nil))
}

// getInvestor godoc
// @Summary Get an investor with its computed balance
// @Tags investors
// @Produce  json
// @Param   investorID path string true "Investor ID"
// @Success 200 {object} dto.InvestorResponse
// @Failure 404 {object} map[string]string "Investor not found"
// @Security BearerAuth
// @Router /investors/{investorID} [get]
func (h *investorHandler) getInvestor(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}
	investorID := c.Param("investorID")

	investor, err := h.investorService.GetInvestorByID(c.Request.Context(), tenantID, investorID)
	if err != nil {
		respondServiceError(c, err, "get investor")
		return
	}

	balance, err := h.investorService.ComputeBalance(c.Request.Context(), tenantID, investorID)
	if err != nil {
		respondServiceError(c, err, "compute investor balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorResponse(investor, balance))
}

// getInvestorBalance godoc
// @Summary Get an investor's computed capital position
// @Tags investors
// @Produce  json
// @Param   investorID path string true "Investor ID"
// @Success 200 {object} domain.InvestorBalance
// @Failure 404 {object} map[string]string "Investor not found"
// @Security BearerAuth
// @Router /investors/{investorID}/balance [get]
func (h *investorHandler) getInvestorBalance(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	balance, err := h.investorService.ComputeBalance(c.Request.Context(), tenantID, c.Param("investorID"))
	if err != nil {
		respondServiceError(c, err, "compute investor balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// listInvestors godoc
// @Summary List investors
// @Tags investors
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.InvestorResponse
// @Security BearerAuth
// @Router /investors [get]
func (h *investorHandler) listInvestors(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	investors, err := h.investorService.ListInvestors(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list investors")
		return
	}

	res := make([]dto.InvestorResponse, len(investors))
	for i := range investors {
		res[i] = dto.ToInvestorResponse(&investors[i], nil)
	}
	c.JSON(http.StatusOK, res)
}

// updateInvestor godoc
// @Summary Update an investor
// @Tags investors
// @Accept  json
// @Produce  json
// @Param   investorID path string true "Investor ID"
// @Param   investor body dto.UpdateInvestorRequest true "Fields to update"
// @Success 200 {object} dto.InvestorResponse
// @Failure 404 {object} map[string]string "Investor not found"
// @Security BearerAuth
// @Router /investors/{investorID} [put]
func (h *investorHandler) updateInvestor(c *gin.Context) {
	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	investor, err := h.investorService.UpdateInvestor(c.Request.Context(), tenantID, c.Param("investorID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update investor")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorResponse(investor, nil))
}
