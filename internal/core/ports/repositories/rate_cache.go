package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CachedRate is the result of a cache read. Generation is the invalidation
// count seen by the read and is handed back to SetExchangeRate after a miss.
type CachedRate struct {
	Rate       decimal.Decimal
	Hit        bool
	Generation int64
}

// ExchangeRateCache is a read-through cache of exchange rates keyed by close date.
type ExchangeRateCache interface {
	GetExchangeRate(ctx context.Context, date time.Time) (CachedRate, error)

	// SetExchangeRate stores rate unless the date was invalidated after the read
	// that returned generation.
	SetExchangeRate(ctx context.Context, date time.Time, rate decimal.Decimal, generation int64) error

	InvalidateExchangeRate(ctx context.Context, date time.Time) error
}
