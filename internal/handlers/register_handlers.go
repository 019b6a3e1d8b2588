package handlers

import (
	"github.com/cambiosoft/exchange_backend/cmd/docs"
	portssvc "github.com/cambiosoft/exchange_backend/internal/core/ports/services"
	"github.com/cambiosoft/exchange_backend/internal/middleware"
	"github.com/cambiosoft/exchange_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register public authentication routes
	setupAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAuthRoutes configures the public /api/v1/auth group behind an
// in-memory per-IP rate limiter.
func setupAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth", middleware.RateLimit(ipLimiter))
	registerAuthRoutes(auth, services.Auth)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// API-token resolution runs first; anything it doesn't claim falls
	// through to JWT validation.
	v1 := r.Group("/api/v1",
		middleware.APITokenAuthMiddleware(services.APIToken, services.User),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerTenantRoutes(v1, services.Tenant)
	registerCurrencyRoutes(v1, services.Currency)
	registerAccountRoutes(v1, services.Account)
	registerPartyRoutes(v1, services.Party)
	registerInvestorRoutes(v1, services.Investor)
	registerTransactionRoutes(v1, services.Accounting)
	registerLedgerRoutes(v1, services.Ledger, services.Operations)
	registerOperationsRoutes(v1, services.Operations)
	registerClosureRoutes(v1, services.Closure)
	registerReportingRoutes(v1, services.Reporting)
	registerAPITokenRoutes(v1, services.APIToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
