package services

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateLookupSvc resolves the exchange rate in force on a date
type ExchangeRateLookupSvc interface {
	// GetExchangeRate returns the rate of the close on exactly date, or
	// apperrors.ErrRateNotFound.
	GetExchangeRate(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// MarketCloseReaderSvc defines read operations for market closes
type MarketCloseReaderSvc interface {
	GetMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error)
	GetLatestMarketClose(ctx context.Context) (*domain.MarketClose, error)
	ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error)
}

// MarketCloseWriterSvc defines write operations for market closes
type MarketCloseWriterSvc interface {
	// RecordMarketClose inserts or replaces the close for its date.
	RecordMarketClose(ctx context.Context, mc domain.MarketClose, userID string) (*domain.MarketClose, error)
}

// MarketCloseSvcFacade combines all market close service interfaces
type MarketCloseSvcFacade interface {
	MarketCloseReaderSvc
	MarketCloseWriterSvc
}
