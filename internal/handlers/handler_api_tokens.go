package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// apiTokenHandler handles HTTP requests for automation tokens. Tokens are
// personal: every route operates on the caller's own tokens.
type apiTokenHandler struct {
	tokenService portssvc.APITokenSvcFacade
}

func newAPITokenHandler(ts portssvc.APITokenSvcFacade) *apiTokenHandler {
	return &apiTokenHandler{tokenService: ts}
}

// registerAPITokenRoutes registers routes related to API tokens.
func registerAPITokenRoutes(rg *gin.RouterGroup, tokenService portssvc.APITokenSvcFacade) {
	h := newAPITokenHandler(tokenService)

	tokens := rg.Group("/api-tokens")
	{
		tokens.POST("", h.createToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:tokenID", h.revokeToken)
	}
}

// createToken godoc
// @Summary Issue a new API token
// @Description The plaintext token is returned once and cannot be retrieved later
// @Tags api-tokens
// @Accept  json
// @Produce  json
// @Param   token body dto.CreateAPITokenRequest true "Token details"
// @Success 201 {object} dto.APITokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /api-tokens [post]
func (h *apiTokenHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, userID, ok := authContext(c)
	if !ok {
		return
	}

	token, err := h.tokenService.CreateToken(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "create api token")
		return
	}

	logger.Info("API token issued", slog.String("token_id", token.ID), slog.String("name", token.Name))
	c.JSON(http.StatusCreated, token)
}

// listTokens godoc
// @Summary List the caller's API tokens
// @Tags api-tokens
// @Produce  json
// @Success 200 {array} dto.APITokenResponse
// @Security BearerAuth
// @Router /api-tokens [get]
func (h *apiTokenHandler) listTokens(c *gin.Context) {
	_, userID, ok := authContext(c)
	if !ok {
		return
	}

	tokens, err := h.tokenService.ListTokens(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "list api tokens")
		return
	}

	res := make([]dto.APITokenResponse, len(tokens))
	for i := range tokens {
		res[i] = dto.ToAPITokenResponse(&tokens[i])
	}
	c.JSON(http.StatusOK, res)
}

// revokeToken godoc
// @Summary Revoke one of the caller's API tokens
// @Tags api-tokens
// @Param   tokenID path string true "Token ID"
// @Success 204 "Token revoked"
// @Failure 404 {object} map[string]string "Token not found"
// @Security BearerAuth
// @Router /api-tokens/{tokenID} [delete]
func (h *apiTokenHandler) revokeToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, userID, ok := authContext(c)
	if !ok {
		return
	}
	tokenID := c.Param("tokenID")

	if err := h.tokenService.RevokeToken(c.Request.Context(), userID, tokenID); err != nil {
		respondServiceError(c, err, "revoke api token")
		return
	}

	logger.Info("API token revoked", slog.String("token_id", tokenID))
	c.Status(http.StatusNoContent)
}
