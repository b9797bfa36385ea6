package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketClose is a row of the market_closes table. PositionPrices is stored as JSONB.
type MarketClose struct {
	CloseID         int64                      `db:"close_id"`
	CloseDate       time.Time                  `db:"close_date"`
	PriceUSDPerSack decimal.NullDecimal        `db:"price_usd_per_sack"`
	ExchangeRate    decimal.NullDecimal        `db:"exchange_rate"`
	PositionPrices  map[string]decimal.Decimal `db:"position_prices"`
	PriceSource     string                     `db:"price_source"`
	RateSource      string                     `db:"rate_source"`
	AuditFields
}
