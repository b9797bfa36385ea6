package dto

import (
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MarketCloseRequest is the daily close as entered by an administrator.
type MarketCloseRequest struct {
	Date            string           `json:"fecha" binding:"required,datetime=2006-01-02" example:"2025-09-15"`
	PriceUSDPerSack *decimal.Decimal `json:"precio_usd_saco,omitempty" swaggertype:"string" example:"185.20"`
	ExchangeRate    *decimal.Decimal `json:"tasa_cambio_bch,omitempty" swaggertype:"string" example:"24.56"`
	PositionPrices
	PriceSource string `json:"fuente_precio,omitempty" binding:"omitempty,max=100"`
	RateSource  string `json:"fuente_tasa,omitempty" binding:"omitempty,max=100"`
}

// PositionPrices are the ICE futures closes, one field per contract month.
type PositionPrices struct {
	DIC24 *decimal.Decimal `json:"precio_posicion_dic24" swaggertype:"string"`
	MAR25 *decimal.Decimal `json:"precio_posicion_mar25" swaggertype:"string"`
	MAY25 *decimal.Decimal `json:"precio_posicion_may25" swaggertype:"string"`
	JUL25 *decimal.Decimal `json:"precio_posicion_jul25" swaggertype:"string"`
	SEP25 *decimal.Decimal `json:"precio_posicion_sep25" swaggertype:"string"`
	DIC25 *decimal.Decimal `json:"precio_posicion_dic25" swaggertype:"string"`
	MAR26 *decimal.Decimal `json:"precio_posicion_mar26" swaggertype:"string"`
	MAY26 *decimal.Decimal `json:"precio_posicion_may26" swaggertype:"string"`
	JUL26 *decimal.Decimal `json:"precio_posicion_jul26" swaggertype:"string"`
	SEP26 *decimal.Decimal `json:"precio_posicion_sep26" swaggertype:"string"`
}

func (p PositionPrices) fields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"DIC24": p.DIC24, "MAR25": p.MAR25, "MAY25": p.MAY25, "JUL25": p.JUL25, "SEP25": p.SEP25,
		"DIC25": p.DIC25, "MAR26": p.MAR26, "MAY26": p.MAY26, "JUL26": p.JUL26, "SEP26": p.SEP26,
	}
}

// toMap keeps only the positions that were sent.
func (p PositionPrices) toMap() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for position, price := range p.fields() {
		if price != nil {
			out[position] = *price
		}
	}
	return out
}

func positionPricesFromMap(m map[string]decimal.Decimal) PositionPrices {
	get := func(position string) *decimal.Decimal {
		if v, ok := m[position]; ok {
			return &v
		}
		return nil
	}
	return PositionPrices{
		DIC24: get("DIC24"), MAR25: get("MAR25"), MAY25: get("MAY25"), JUL25: get("JUL25"), SEP25: get("SEP25"),
		DIC25: get("DIC25"), MAR26: get("MAR26"), MAY26: get("MAY26"), JUL26: get("JUL26"), SEP26: get("SEP26"),
	}
}

// ToDomain converts the request into a domain.MarketClose.
func (r MarketCloseRequest) ToDomain() (domain.MarketClose, error) {
	date, err := domain.ParseCalendarDate(r.Date)
	if err != nil {
		return domain.MarketClose{}, err
	}
	return domain.MarketClose{
		CloseDate:       date,
		PriceUSDPerSack: r.PriceUSDPerSack,
		ExchangeRate:    r.ExchangeRate,
		PositionPrices:  r.PositionPrices.toMap(),
		PriceSource:     r.PriceSource,
		RateSource:      r.RateSource,
	}, nil
}

// ListMarketClosesParams defines query parameters for listing closes.
type ListMarketClosesParams struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

// MarketCloseResponse is a stored close in the legacy frontend format.
type MarketCloseResponse struct {
	CloseID         int64            `json:"id_registro"`
	Date            string           `json:"fecha"`
	PriceUSDPerSack *decimal.Decimal `json:"precio_usd_saco" swaggertype:"string"`
	ExchangeRate    *decimal.Decimal `json:"tasa_cambio_bch" swaggertype:"string"`
	PositionPrices
	PriceSource   string    `json:"fuente_precio"`
	RateSource    string    `json:"fuente_tasa"`
	CreatedAt     time.Time `json:"fecha_registro"`
	LastUpdatedAt time.Time `json:"fecha_actualizacion"`
	LastUpdatedBy string    `json:"actualizado_por"`
}

// ToMarketCloseResponse converts a domain.MarketClose to MarketCloseResponse DTO
func ToMarketCloseResponse(mc *domain.MarketClose) MarketCloseResponse {
	return MarketCloseResponse{
		CloseID:         mc.CloseID,
		Date:            mc.CloseDate.Format(domain.DateLayout),
		PriceUSDPerSack: mc.PriceUSDPerSack,
		ExchangeRate:    mc.ExchangeRate,
		PositionPrices:  positionPricesFromMap(mc.PositionPrices),
		PriceSource:     mc.PriceSource,
		RateSource:      mc.RateSource,
		CreatedAt:       mc.CreatedAt,
		LastUpdatedAt:   mc.LastUpdatedAt,
		LastUpdatedBy:   mc.LastUpdatedBy,
	}
}

// ToListMarketCloseResponse converts a slice of domain.MarketClose to MarketCloseResponse DTOs
func ToListMarketCloseResponse(closes []domain.MarketClose) []MarketCloseResponse {
	res := make([]MarketCloseResponse, len(closes))
	for i := range closes {
		res[i] = ToMarketCloseResponse(&closes[i])
	}
	return res
}
