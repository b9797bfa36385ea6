package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPriceSource = "ICE Futures"
	DefaultRateSource  = "Banco Central de Honduras"
)

// ContractPositions lists the ICE futures delivery months tracked on each close.
var ContractPositions = []string{
	"DIC24", "MAR25", "MAY25", "JUL25", "SEP25",
	"DIC25", "MAR26", "MAY26", "JUL26", "SEP26",
}

// MarketClose is the daily New York close price and central bank exchange rate.
// At most one exists per calendar date.
type MarketClose struct {
	CloseID         int64                      `json:"closeID"`
	CloseDate       time.Time                  `json:"closeDate"`
	PriceUSDPerSack *decimal.Decimal           `json:"priceUSDPerSack,omitempty"`
	ExchangeRate    *decimal.Decimal           `json:"exchangeRate,omitempty"` // local currency per USD
	PositionPrices  map[string]decimal.Decimal `json:"positionPrices"`
	PriceSource     string                     `json:"priceSource"`
	RateSource      string                     `json:"rateSource"`
	AuditFields
}
