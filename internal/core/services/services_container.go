package services

import (
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate lookup first since purchases depend on it
	container.ExchangeRate = NewExchangeRateService(repos.MarketCloseRepo, repos.RateCache)

	container.MarketClose = NewMarketCloseService(repos.MarketCloseRepo, repos.RateCache)
	container.Purchase = NewPurchaseService(cfg, repos.PurchaseRepo, container.ExchangeRate)
	container.User = NewUserService(cfg, repos.UserRepo)
	container.AccessRequest = NewAccessRequestService(repos.AccessRequestRepo, repos.UserRepo)

	return container
}
