package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/middleware"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/config"
)

// RegisterRoutes mounts all API routes on the engine. Everything under
// /api/v1 except login sits behind the bearer-token gate.
func RegisterRoutes(engine *gin.Engine, services *portssvc.ServiceContainer, cfg *config.Config) {
	registerHomeRoutes(engine)

	apiV1 := engine.Group("/api/v1")
	registerAuthRoutes(apiV1, cfg)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		registerCustomerRoutes(protected, services.Customer)
		registerDocumentRoutes(protected, services.Document)
		registerCatalogRoutes(protected, services.Catalog)
	}
}
