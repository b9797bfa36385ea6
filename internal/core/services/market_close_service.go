package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type marketCloseService struct {
	BaseService
	closeRepo portsrepo.MarketCloseRepositoryFacade
	rateCache portsrepo.ExchangeRateCache
}

// NewMarketCloseService creates a MarketCloseSvcFacade. rateCache may be nil.
func NewMarketCloseService(closeRepo portsrepo.MarketCloseRepositoryFacade, rateCache portsrepo.ExchangeRateCache) portssvc.MarketCloseSvcFacade {
	return &marketCloseService{closeRepo: closeRepo, rateCache: rateCache}
}

var _ portssvc.MarketCloseSvcFacade = (*marketCloseService)(nil)

func validateMarketClose(mc domain.MarketClose) error {
	if mc.CloseDate.IsZero() {
		return fmt.Errorf("%w: close date is required", apperrors.ErrValidation)
	}
	if mc.PriceUSDPerSack != nil && mc.PriceUSDPerSack.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	if mc.ExchangeRate != nil && !mc.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	for position, price := range mc.PositionPrices {
		if !slices.Contains(domain.ContractPositions, position) {
			return fmt.Errorf("%w: unknown contract position %s", apperrors.ErrValidation, position)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: position %s price must not be negative", apperrors.ErrValidation, position)
		}
	}
	return nil
}

func (s *marketCloseService) RecordMarketClose(ctx context.Context, mc domain.MarketClose, userID string) (*domain.MarketClose, error) {
	if err := validateMarketClose(mc); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	mc.CloseDate = domain.CalendarDate(mc.CloseDate)
	if mc.PriceSource == "" {
		mc.PriceSource = domain.DefaultPriceSource
	}
	if mc.RateSource == "" {
		mc.RateSource = domain.DefaultRateSource
	}
	if mc.PositionPrices == nil {
		mc.PositionPrices = map[string]decimal.Decimal{}
	}
	mc.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	saved, err := s.closeRepo.UpsertMarketClose(ctx, mc)
	if err != nil {
		s.LogError(ctx, err, "Failed to record market close", slog.String("date", mc.CloseDate.Format(domain.DateLayout)))
		return nil, fmt.Errorf("failed to record market close: %w", err)
	}

	if s.rateCache != nil {
		if err := s.rateCache.InvalidateExchangeRate(ctx, saved.CloseDate); err != nil {
			s.LogWarn(ctx, "Failed to invalidate cached rate", slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Market close recorded",
		slog.String("date", saved.CloseDate.Format(domain.DateLayout)),
		slog.Int64("close_id", saved.CloseID))
	return saved, nil
}

func (s *marketCloseService) GetMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error) {
	mc, err := s.closeRepo.FindMarketCloseByDate(ctx, domain.CalendarDate(date))
	if err != nil {
		return nil, fmt.Errorf("market close for %s: %w", date.Format(domain.DateLayout), err)
	}
	return mc, nil
}

func (s *marketCloseService) GetLatestMarketClose(ctx context.Context) (*domain.MarketClose, error) {
	mc, err := s.closeRepo.FindLatestMarketClose(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest market close: %w", err)
	}
	return mc, nil
}

func (s *marketCloseService) ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error) {
	limit, offset, err := s.NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []domain.MarketClose{}, nil
	}
	closes, err := s.closeRepo.ListMarketCloses(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list market closes: %w", err)
	}
	return closes, nil
}
