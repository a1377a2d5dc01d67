package repositories

// RepositoryProvider bundles every repository implementation the service
// layer needs, so wiring happens in one place.
type RepositoryProvider struct {
	ProductRepo      ProductRepositoryFacade
	StockRepo        StockRepositoryWithTx
	CustomerRepo     CustomerRepositoryFacade
	WalletRepo       WalletRepositoryWithTx
	OrderRepo        OrderRepositoryWithTx
	CurrencyRepo     CurrencyRepository
	ExchangeRateRepo ExchangeRateRepository
	UserRepo         UserReader
	NotificationRepo NotificationRepositoryFacade
}
