package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closureHandler handles HTTP requests for cash register closures.
type closureHandler struct {
	closureService portssvc.ClosureSvcFacade
}

func newClosureHandler(cs portssvc.ClosureSvcFacade) *closureHandler {
	return &closureHandler{closureService: cs}
}

// registerClosureRoutes registers routes related to cash closures.
func registerClosureRoutes(rg *gin.RouterGroup, closureService portssvc.ClosureSvcFacade) {
	h := newClosureHandler(closureService)

	closures := rg.Group("/cash-closures")
	{
		closures.POST("", middleware.RequireWriteRole(), h.openClosure)
		closures.GET("", h.listClosures)
		closures.GET("/open", h.getOpenClosure)
		closures.POST("/:closureID/close", middleware.RequireWriteRole(), h.closeClosure)
	}
}

// openClosure godoc
// @Summary Open a cash register window
// @Description Starts a reconciliation window for a cash account; fails if one is already open
// @Tags closures
// @Accept  json
// @Produce  json
// @Param   closure body dto.OpenClosureRequest true "Opening details"
// @Success 201 {object} dto.CashClosureResponse
// @Failure 400 {object} map[string]string "Not a cash account"
// @Failure 409 {object} map[string]string "Account already has an open closure"
// @Security BearerAuth
// @Router /cash-closures [post]
func (h *closureHandler) openClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	closure, err := h.closureService.OpenClosure(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "open cash closure")
		return
	}

	logger.Info("Cash closure opened", slog.String("closure_id", closure.ClosureID), slog.String("account_id", closure.AccountID))
	c.JSON(http.StatusCreated, dto.ToCashClosureResponse(closure))
}

// closeClosure godoc
// @Summary Close a cash register window
// @Description Computes the theoretical balance and records the difference against the counted amount
// @Tags closures
// @Accept  json
// @Produce  json
// @Param   closureID path string true "Closure ID"
// @Param   closure body dto.CloseClosureRequest true "Counted balance"
// @Success 200 {object} dto.CashClosureResponse
// @Failure 409 {object} map[string]string "Closure already closed"
// @Security BearerAuth
// @Router /cash-closures/{closureID}/close [post]
func (h *closureHandler) closeClosure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}
	closureID := c.Param("closureID")

	closure, err := h.closureService.CloseClosure(c.Request.Context(), tenantID, closureID, req, userID)
	if err != nil {
		respondServiceError(c, err, "close cash closure")
		return
	}

	logger.Info("Cash closure closed",
		slog.String("closure_id", closureID),
		slog.String("difference", closure.Difference.String()),
	)
	c.JSON(http.StatusOK, dto.ToCashClosureResponse(closure))
}

// getOpenClosure godoc
// @Summary Get the open closure for an account
// @Tags closures
// @Produce  json
// @Param   accountID query string true "Cash account ID"
// @Success 200 {object} dto.CashClosureResponse
// @Failure 404 {object} map[string]string "No open closure"
// @Security BearerAuth
// @Router /cash-closures/open [get]
func (h *closureHandler) getOpenClosure(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter required"})
		return
	}

	closure, err := h.closureService.GetOpenClosure(c.Request.Context(), tenantID, accountID)
	if err != nil {
		respondServiceError(c, err, "get open cash closure")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashClosureResponse(closure))
}

// listClosures godoc
// @Summary List cash closures
// @Tags closures
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CashClosureResponse
// @Security BearerAuth
// @Router /cash-closures [get]
func (h *closureHandler) listClosures(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	closures, err := h.closureService.ListClosures(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list cash closures")
		return
	}

	res := make([]dto.CashClosureResponse, len(closures))
	for i := range closures {
		res[i] = dto.ToCashClosureResponse(&closures[i])
	}
	c.JSON(http.StatusOK, res)
}
