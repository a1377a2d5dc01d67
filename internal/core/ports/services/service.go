package services

// ServiceContainer holds all the service facades the handler layer depends
// on.
type ServiceContainer struct {
	Pricing      PricingSvcFacade
	Currency     CurrencySvcFacade
	Order        OrderSvcFacade
	Wallet       WalletSvcFacade
	Inventory    InventorySvcFacade
	Customer     CustomerSvcFacade
	User         UserSvcFacade
	Notification NotificationSvcFacade
}
