package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

const rateCacheName = "close_rate"

// exchangeRateService reads rates from the market close store through an optional cache.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
	cache    portsrepo.ExchangeRateCache
}

// NewExchangeRateService creates a rate lookup. cache may be nil.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader, cache portsrepo.ExchangeRateCache) portssvc.ExchangeRateLookupSvc {
	return &exchangeRateService{rateRepo: rateRepo, cache: cache}
}

var _ portssvc.ExchangeRateLookupSvc = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	date = domain.CalendarDate(date)
	dateAttr := slog.String("date", date.Format(domain.DateLayout))

	var generation int64
	if s.cache != nil {
		cached, err := s.cache.GetExchangeRate(ctx, date)
		switch {
		case err != nil:
			s.LogWarn(ctx, "Rate cache read failed, falling back to store", dateAttr, slog.String("error", err.Error()))
		case cached.Hit:
			metrics.RecordCacheHit(rateCacheName)
			return cached.Rate, nil
		default:
			metrics.RecordCacheMiss(rateCacheName)
			generation = cached.Generation
		}
	}

	rate, err := s.rateRepo.FindExchangeRateByDate(ctx, date)
	if err != nil {
		return decimal.Zero, err
	}

	if s.cache != nil {
		if err := s.cache.SetExchangeRate(ctx, date, rate, generation); err != nil {
			s.LogWarn(ctx, "Failed to cache exchange rate", dateAttr, slog.String("error", err.Error()))
		}
	}
	return rate, nil
}
