package handlers

import (
	"net/http"

	"github.com/cambiosoft/exchange_backend/internal/core/domain"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests related to counterparties.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers routes related to counterparties.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.POST("", middleware.RequireWriteRole(), h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyID", h.getParty)
		parties.PUT("/:partyID", middleware.RequireWriteRole(), h.updateParty)
		parties.DELETE("/:partyID", middleware.RequireWriteRole(), h.deactivateParty)
	}
}

// createParty godoc
// @Summary Register a counterparty
// @Description Creates a provider, broker, client or employee record
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create party")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// getParty godoc
// @Summary Get a counterparty by ID
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), tenantID, c.Param("partyID"))
	if err != nil {
		respondServiceError(c, err, "get party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List counterparties
// @Tags parties
// @Produce  json
// @Param   type query string false "Filter by party type"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.PartyResponse
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	tenantID, _, ok := authContext(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var partyType *domain.PartyType
	if t := c.Query("type"); t != "" {
		pt := domain.PartyType(t)
		if !domain.ValidPartyType(pt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown party type: " + t})
			return
		}
		partyType = &pt
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), tenantID, partyType, params)
	if err != nil {
		respondServiceError(c, err, "list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartyResponse(parties))
}

// updateParty godoc
// @Summary Update a counterparty
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{partyID} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), tenantID, c.Param("partyID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// deactivateParty godoc
// @Summary Deactivate a counterparty
// @Tags parties
// @Param   partyID path string true "Party ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{partyID} [delete]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	tenantID, userID, ok := authContext(c)
	if !ok {
		return
	}

	if err := h.partyService.DeactivateParty(c.Request.Context(), tenantID, c.Param("partyID"), userID); err != nil {
		respondServiceError(c, err, "deactivate party")
		return
	}
	c.Status(http.StatusNoContent)
}
