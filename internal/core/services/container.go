package services

import (
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/utils/analytics"
	"github.com/salescore/order_ledger_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, posthogClient *analytics.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency first since pricing and orders depend on it
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.ExchangeRateRepo, cfg.BaseCurrency)
	container.User = NewUserService(repos.UserRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Notification = NewNotificationService(repos.UserRepo, repos.NotificationRepo, posthogClient)

	container.Pricing = NewPricingService(repos.ProductRepo, repos.StockRepo, container.Currency)
	container.Inventory = NewInventoryService(repos.StockRepo, repos.StockRepo, container.Notification)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.CustomerRepo)
	container.Order = NewOrderService(
		repos.OrderRepo,
		repos.ProductRepo,
		repos.CustomerRepo,
		container.Pricing,
		container.Currency,
		container.User,
		container.Notification,
	)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.PricingSvcFacade      = (*PricingService)(nil)
	_ portssvc.InventorySvcFacade    = (*InventoryService)(nil)
	_ portssvc.WalletSvcFacade       = (*WalletService)(nil)
	_ portssvc.OrderSvcFacade        = (*OrderService)(nil)
	_ portssvc.CustomerSvcFacade     = (*CustomerService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.NotificationSvcFacade = (*NotificationService)(nil)
)
