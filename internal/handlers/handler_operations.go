package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operationsHandler handles HTTP requests for exchange operations.
type operationsHandler struct {
	operationsService portssvc.OperationsSvcFacade
}

func newOperationsHandler(os portssvc.OperationsSvcFacade) *operationsHandler {
	return &operationsHandler{operationsService: os}
}

// registerOperationsRoutes registers routes for exchanges, dollar purchases
// and internal cash movements.
func registerOperationsRoutes(rg *gin.RouterGroup, operationsService portssvc.OperationsSvcFacade) {
	h := newOperationsHandler(operationsService)

	exchanges := rg.Group("/exchanges")
	{
		exchanges.POST("", middleware.RequireWriteRole(), h.createExchange)
		exchanges.GET("", h.listExchanges)
		exchanges.GET("/:exchangeID", h.getExchange)
	}

	purchases := rg.Group("/dollar-purchases")
	{
		purchases.POST("", middleware.RequireWriteRole(), h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchaseID", h.getPurchase)
	}

	internal := rg.Group("/internal-transactions")
	{
		internal.POST("", middleware.RequireWriteRole(), h.createInternalTransaction)
		internal.GET("", h.listInternalTransactions)
	}

	rg.POST("/balances/top-up", middleware.RequireWriteRole(), h.addBalance)
}

// createExchange godoc
// @Summary Execute a currency exchange operation
// @Description Moves funds between accounts, books commission obligations and records the operation atomically
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   exchange body dto.CreateCurrencyExchangeRequest true "Exchange details"
// @Success 201 {object} dto.CurrencyExchangeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /exchanges [post]
func (h *operationsHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCurrencyExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	exchange, err := h.operationsService.CreateCurrencyExchange(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create currency exchange")
		return
	}

	logger.Info("Currency exchange created", slog.String("exchange_id", exchange.ExchangeID), slog.String("number", exchange.Number))
	c.JSON(http.StatusCreated, dto.ToCurrencyExchangeResponse(exchange))
}

// getExchange godoc
// @Summary Get an exchange operation by ID
// @Tags operations
// @Produce  json
// @Param   exchangeID path string true "Exchange ID"
// @Success 200 {object} dto.CurrencyExchangeResponse
// @Failure 404 {object} map[string]string "Exchange not found"
// @Security BearerAuth
// @Router /exchanges/{exchangeID} [get]
func (h *operationsHandler) getExchange(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	exchange, err := h.operationsService.GetExchangeByID(c.Request.Context(), tenantID, c.Param("exchangeID"))
	if err != nil {
		respondServiceError(c, err, "get currency exchange")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyExchangeResponse(exchange))
}

// listExchanges godoc
// @Summary List exchange operations
// @Tags operations
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CurrencyExchangeResponse
// @Security BearerAuth
// @Router /exchanges [get]
func (h *operationsHandler) listExchanges(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	exchanges, err := h.operationsService.ListExchanges(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list currency exchanges")
		return
	}

	res := make([]dto.CurrencyExchangeResponse, len(exchanges))
	for i := range exchanges {
		res[i] = dto.ToCurrencyExchangeResponse(&exchanges[i])
	}
	c.JSON(http.StatusOK, res)
}

// createPurchase godoc
// @Summary Execute a dollar purchase operation
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreateDollarPurchaseRequest true "Purchase details"
// @Success 201 {object} dto.DollarPurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /dollar-purchases [post]
func (h *operationsHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDollarPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	purchase, err := h.operationsService.CreateDollarPurchase(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create dollar purchase")
		return
	}

	logger.Info("Dollar purchase created", slog.String("purchase_id", purchase.PurchaseID), slog.String("number", purchase.Number))
	c.JSON(http.StatusCreated, dto.ToDollarPurchaseResponse(purchase))
}

// getPurchase godoc
// @Summary Get a dollar purchase by ID
// @Tags operations
// @Produce  json
// @Param   purchaseID path string true "Purchase ID"
// @Success 200 {object} dto.DollarPurchaseResponse
// @Failure 404 {object} map[string]string "Purchase not found"
// @Security BearerAuth
// @Router /dollar-purchases/{purchaseID} [get]
func (h *operationsHandler) getPurchase(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	purchase, err := h.operationsService.GetPurchaseByID(c.Request.Context(), tenantID, c.Param("purchaseID"))
	if err != nil {
		respondServiceError(c, err, "get dollar purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToDollarPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List dollar purchases
// @Tags operations
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.DollarPurchaseResponse
// @Security BearerAuth
// @Router /dollar-purchases [get]
func (h *operationsHandler) listPurchases(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	purchases, err := h.operationsService.ListPurchases(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list dollar purchases")
		return
	}

	res := make([]dto.DollarPurchaseResponse, len(purchases))
	for i := range purchases {
		res[i] = dto.ToDollarPurchaseResponse(&purchases[i])
	}
	c.JSON(http.StatusOK, res)
}

// createInternalTransaction godoc
// @Summary Record a cash-register movement
// @Description Registers an income or expense against a real account or a virtual counterparty
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateInternalTransactionRequest true "Movement details"
// @Success 201 {object} dto.InternalTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /internal-transactions [post]
func (h *operationsHandler) createInternalTransaction(c *gin.Context) {
	var req dto.CreateInternalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	txn, err := h.operationsService.CreateInternalTransaction(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create internal transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInternalTransactionResponse(txn))
}

// listInternalTransactions godoc
// @Summary List cash-register movements
// @Tags operations
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.InternalTransactionResponse
// @Security BearerAuth
// @Router /internal-transactions [get]
func (h *operationsHandler) listInternalTransactions(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.operationsService.ListInternalTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list internal transactions")
		return
	}

	res := make([]dto.InternalTransactionResponse, len(txns))
	for i := range txns {
		res[i] = dto.ToInternalTransactionResponse(&txns[i])
	}
	c.JSON(http.StatusOK, res)
}

// addBalance godoc
// @Summary Top up a provider wallet or investor capital
// @Description Books a payable obligation toward the entity without moving any account balance
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   topUp body dto.AddBalanceRequest true "Top-up details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /balances/top-up [post]
func (h *operationsHandler) addBalance(c *gin.Context) {
	var req dto.AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	entry, err := h.operationsService.AddBalanceToEntity(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "add balance to entity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}
