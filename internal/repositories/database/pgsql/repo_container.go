package pgsql

import (
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto dbPool.
// The rate cache is left for the caller to attach.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          NewPgxUserRepository(dbPool),
		AccessRequestRepo: NewPgxAccessRequestRepository(dbPool),
		MarketCloseRepo:   NewPgxMarketCloseRepository(dbPool),
		PurchaseRepo:      NewPgxPurchaseRepository(dbPool),
	}
}
