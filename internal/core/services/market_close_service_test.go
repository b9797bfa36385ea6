package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MarketCloseServiceTestSuite struct {
	suite.Suite
	repo    *MockMarketCloseRepository
	cache   *MockRateCache
	service portssvc.MarketCloseSvcFacade
	ctx     context.Context
}

func (suite *MarketCloseServiceTestSuite) SetupTest() {
	suite.repo = new(MockMarketCloseRepository)
	suite.cache = new(MockRateCache)
	suite.service = services.NewMarketCloseService(suite.repo, suite.cache)
	suite.ctx = context.Background()
}

func (suite *MarketCloseServiceTestSuite) TestRecordMarketClose_DefaultsAndInvalidatesCache() {
	rate := decimal.RequireFromString("24.56")
	price := decimal.RequireFromString("185.20")
	mc := domain.MarketClose{
		CloseDate:       time.Date(2025, 9, 15, 13, 0, 0, 0, time.UTC),
		PriceUSDPerSack: &price,
		ExchangeRate:    &rate,
	}
	day := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	suite.repo.On("UpsertMarketClose", suite.ctx, mock.MatchedBy(func(m domain.MarketClose) bool {
		return m.CloseDate.Equal(day) &&
			m.PriceSource == domain.DefaultPriceSource &&
			m.RateSource == domain.DefaultRateSource &&
			m.PositionPrices != nil &&
			m.CreatedBy == "admin-1" && m.LastUpdatedBy == "admin-1"
	})).Return(&domain.MarketClose{CloseID: 3, CloseDate: day, ExchangeRate: &rate}, nil).Once()
	suite.cache.On("InvalidateExchangeRate", suite.ctx, day).Return(nil).Once()

	saved, err := suite.service.RecordMarketClose(suite.ctx, mc, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(int64(3), saved.CloseID)
	suite.repo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func (suite *MarketCloseServiceTestSuite) TestRecordMarketClose_Validation() {
	zero := decimal.Zero
	negative := decimal.RequireFromString("-1")

	tests := []struct {
		name string
		mc   domain.MarketClose
	}{
		{"missing date", domain.MarketClose{}},
		{"zero rate", domain.MarketClose{CloseDate: time.Now(), ExchangeRate: &zero}},
		{"negative price", domain.MarketClose{CloseDate: time.Now(), PriceUSDPerSack: &negative}},
		{"negative position", domain.MarketClose{CloseDate: time.Now(), PositionPrices: map[string]decimal.Decimal{"MAR25": negative}}},
		{"unknown position", domain.MarketClose{CloseDate: time.Now(), PositionPrices: map[string]decimal.Decimal{"DIC30": zero}}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.RecordMarketClose(suite.ctx, tt.mc, "admin-1")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.repo.AssertNotCalled(suite.T(), "UpsertMarketClose", mock.Anything, mock.Anything)
}

func (suite *MarketCloseServiceTestSuite) TestRecordMarketClose_StoreError() {
	suite.repo.On("UpsertMarketClose", suite.ctx, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.RecordMarketClose(suite.ctx, domain.MarketClose{CloseDate: time.Now()}, "admin-1")

	suite.ErrorIs(err, assert.AnError)
	suite.cache.AssertNotCalled(suite.T(), "InvalidateExchangeRate", mock.Anything, mock.Anything)
}

func (suite *MarketCloseServiceTestSuite) TestGetLatestMarketClose_NotFound() {
	suite.repo.On("FindLatestMarketClose", suite.ctx).Return(nil, apperrors.ErrNotFound).Once()

	mc, err := suite.service.GetLatestMarketClose(suite.ctx)

	suite.Nil(mc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MarketCloseServiceTestSuite) TestListMarketCloses_CapsLimit() {
	suite.repo.On("ListMarketCloses", suite.ctx, 500, 0).Return([]domain.MarketClose{{CloseID: 1}}, nil).Once()

	closes, err := suite.service.ListMarketCloses(suite.ctx, 5000, 0)

	suite.Require().NoError(err)
	suite.Len(closes, 1)
}

func (suite *MarketCloseServiceTestSuite) TestListMarketCloses_ZeroLimitIsEmptyPage() {
	closes, err := suite.service.ListMarketCloses(suite.ctx, 0, 0)

	suite.Require().NoError(err)
	suite.NotNil(closes)
	suite.Empty(closes)
	suite.repo.AssertNotCalled(suite.T(), "ListMarketCloses", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarketCloseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MarketCloseServiceTestSuite))
}
