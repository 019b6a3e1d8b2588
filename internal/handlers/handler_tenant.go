package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/dto"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests for tenant administration.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes related to tenants. The whole group
// is admin-only.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants", middleware.RequireAdminRole())
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listTenants)
		tenants.GET("/:tenantID", h.getTenant)
		tenants.PUT("/:tenantID", h.updateTenant)
		tenants.POST("/:tenantID/payments", h.confirmPayment)
	}
}

// createTenant godoc
// @Summary Register a new organization
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, creatorID, ok := authContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "create tenant")
		return
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("name", tenant.Name))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// getTenant godoc
// @Summary Get a tenant by ID
// @Tags tenants
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenantID} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), c.Param("tenantID"))
	if err != nil {
		respondServiceError(c, err, "get tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// listTenants godoc
// @Summary List tenants
// @Tags tenants
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.TenantResponse
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listTenants(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenants, err := h.tenantService.ListTenants(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list tenants")
		return
	}

	res := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		res[i] = dto.ToTenantResponse(&tenants[i])
	}
	c.JSON(http.StatusOK, res)
}

// updateTenant godoc
// @Summary Update a tenant
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   tenant body dto.UpdateTenantRequest true "Fields to update"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenantID} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, updaterID, ok := authContext(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), c.Param("tenantID"), req, updaterID)
	if err != nil {
		respondServiceError(c, err, "update tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// confirmPayment godoc
// @Summary Confirm a subscription payment for a tenant
// @Description Extends the tenant's expiry and reactivates it if it had lapsed
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   payment body dto.ConfirmTenantPaymentRequest true "Payment confirmation"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/payments [post]
func (h *tenantHandler) confirmPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConfirmTenantPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	tenantID := c.Param("tenantID")

	tenant, err := h.tenantService.ConfirmPayment(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, err, "confirm tenant payment")
		return
	}

	logger.Info("Tenant payment confirmed",
		slog.String("tenant_id", tenantID),
		slog.String("reference", req.Reference),
	)
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}
