package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for journal entries.
type transactionHandler struct {
	accountingService portssvc.AccountingSvcFacade
}

func newTransactionHandler(as portssvc.AccountingSvcFacade) *transactionHandler {
	return &transactionHandler{accountingService: as}
}

// registerTransactionRoutes registers routes related to journal postings.
func registerTransactionRoutes(rg *gin.RouterGroup, accountingService portssvc.AccountingSvcFacade) {
	h := newTransactionHandler(accountingService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", middleware.RequireWriteRole(), h.registerTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// registerTransaction godoc
// @Summary Post a balanced journal entry
// @Description Records a set of movements that must balance to zero; all account balances move atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RegisterTransactionRequest true "Journal entry"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Unbalanced movements or validation error"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) registerTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	txn, err := h.accountingService.RegisterTransaction(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "register transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", txn.TransactionID), slog.Int("legs", len(txn.Details)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a journal entry with its legs
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	txn, err := h.accountingService.GetTransactionByID(c.Request.Context(), tenantID, c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, err, "get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List journal entries
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.accountingService.ListTransactions(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list transactions")
		return
	}

	resp := dto.ListTransactionsResponse{}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i]))
	}
	c.JSON(http.StatusOK, resp)
}
