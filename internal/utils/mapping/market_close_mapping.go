package mapping

import (
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelMarketClose converts a domain MarketClose to a model MarketClose
func ToModelMarketClose(d domain.MarketClose) models.MarketClose {
	positions := d.PositionPrices
	if positions == nil {
		positions = map[string]decimal.Decimal{}
	}
	return models.MarketClose{
		CloseID:         d.CloseID,
		CloseDate:       d.CloseDate,
		PriceUSDPerSack: toNullDecimal(d.PriceUSDPerSack),
		ExchangeRate:    toNullDecimal(d.ExchangeRate),
		PositionPrices:  positions,
		PriceSource:     d.PriceSource,
		RateSource:      d.RateSource,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMarketClose converts a model MarketClose to a domain MarketClose
func ToDomainMarketClose(m models.MarketClose) domain.MarketClose {
	return domain.MarketClose{
		CloseID:         m.CloseID,
		CloseDate:       m.CloseDate,
		PriceUSDPerSack: fromNullDecimal(m.PriceUSDPerSack),
		ExchangeRate:    fromNullDecimal(m.ExchangeRate),
		PositionPrices:  m.PositionPrices,
		PriceSource:     m.PriceSource,
		RateSource:      m.RateSource,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
