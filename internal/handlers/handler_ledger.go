package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for payable/receivable obligations.
type ledgerHandler struct {
	ledgerService     portssvc.LedgerSvcFacade
	operationsService portssvc.OperationsSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, os portssvc.OperationsSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, operationsService: os}
}

// registerLedgerRoutes registers routes related to ledger entries. Settlement
// goes through the operations service since it moves account balances.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, operationsService portssvc.OperationsSvcFacade) {
	h := newLedgerHandler(ledgerService, operationsService)

	entries := rg.Group("/ledger-entries")
	{
		entries.POST("", middleware.RequireWriteRole(), h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.GET("/:entryID/payments", h.listPayments)
		entries.POST("/:entryID/settle", middleware.RequireWriteRole(), h.settleEntry)
		entries.POST("/:entryID/payments", middleware.RequireWriteRole(), h.payEntry)
	}
}

// createEntry godoc
// @Summary Register a manual obligation
// @Description Creates a payable or receivable entry not tied to any operation
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /ledger-entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a ledger entry by ID
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /ledger-entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), tenantID, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err, "get ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries with optional filters
// @Tags ledger
// @Produce  json
// @Param   type query string false "payable or receivable"
// @Param   status query string false "pending or paid"
// @Param   entityType query string false "Entity kind"
// @Param   entityID query string false "Entity ID"
// @Param   dateFrom query string false "Creation date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Creation date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.LedgerEntryResponse
// @Security BearerAuth
// @Router /ledger-entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// listPayments godoc
// @Summary List payments recorded against an entry
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.LedgerPaymentResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /ledger-entries/{entryID}/payments [get]
func (h *ledgerHandler) listPayments(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	payments, err := h.ledgerService.ListPayments(c.Request.Context(), tenantID, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err, "list ledger payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerPaymentResponses(payments))
}

// settleEntry godoc
// @Summary Settle an entry in full
// @Description Pays the whole pending amount from/into the given account and flips the entry to paid
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   payment body dto.DebtPaymentRequest true "Funding account"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 409 {object} map[string]string "Entry already settled"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /ledger-entries/{entryID}/settle [post]
func (h *ledgerHandler) settleEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.operationsService.ProcessDebtPayment(c.Request.Context(), tenantID, entryID, req.AccountID, userID)
	if err != nil {
		respondServiceError(c, err, "settle ledger entry")
		return
	}

	logger.Info("Ledger entry settled", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// payEntry godoc
// @Summary Record a partial payment against an entry
// @Description Applies a payment; the entry flips to paid once payments cover the original amount
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   payment body dto.LedgerPaymentRequest true "Payment details"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 409 {object} map[string]string "Payment exceeds pending amount"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /ledger-entries/{entryID}/payments [post]
func (h *ledgerHandler) payEntry(c *gin.Context) {
	var req dto.LedgerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	entry, err := h.operationsService.ProcessLedgerPayment(c.Request.Context(), tenantID, c.Param("entryID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "pay ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}
