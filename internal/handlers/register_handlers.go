package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/middleware"
	"github.com/salescore/order_ledger_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route stays outside the API group
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires an acting user header for write attribution
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerCurrencyRoutes(v1, services.Currency)
	registerPricingRoutes(v1, services.Pricing, services.User)
	registerOrderRoutes(v1, services.Order)
	registerWalletRoutes(v1, services.Wallet, services.User)
	registerCustomerRoutes(v1, services.Customer, services.Wallet)
	registerInventoryRoutes(v1, services.Inventory, services.Notification)
}
