package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo          UserRepositoryWithTx
	AccessRequestRepo AccessRequestRepositoryWithTx
	MarketCloseRepo   MarketCloseRepositoryFacade
	PurchaseRepo      PurchaseRepositoryWithTx

	// RateCache is nil when no cache is configured.
	RateCache ExchangeRateCache
}
