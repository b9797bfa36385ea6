package repositories

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MarketCloseReader defines read operations for market closes
type MarketCloseReader interface {
	FindMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error)
	FindLatestMarketClose(ctx context.Context) (*domain.MarketClose, error)

	// ListMarketCloses returns closes newest first.
	ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error)
}

// ExchangeRateReader reads the exchange rate of a single close date.
type ExchangeRateReader interface {
	// FindExchangeRateByDate fails with apperrors.ErrRateNotFound when no close
	// exists for date or its rate is unset.
	FindExchangeRateByDate(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// MarketCloseWriter defines write operations for market closes
type MarketCloseWriter interface {
	// UpsertMarketClose inserts the close for its date or replaces the existing one.
	UpsertMarketClose(ctx context.Context, mc domain.MarketClose) (*domain.MarketClose, error)
}

// MarketCloseRepositoryFacade combines all market close repository interfaces
type MarketCloseRepositoryFacade interface {
	MarketCloseReader
	ExchangeRateReader
	MarketCloseWriter
}
