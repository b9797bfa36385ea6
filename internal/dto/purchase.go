package dto

import (
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MsgPurchaseRegistered is the confirmation returned with a committed submission.
const MsgPurchaseRegistered = "Registros creados exitosamente"

// CreatePurchaseRequest is one grouped purchase event as sent by the frontend.
// The same body drives the pay-detail preview.
type CreatePurchaseRequest struct {
	Date               string           `json:"fecha" binding:"required,datetime=2006-01-02" example:"2025-09-15"`
	ExporterCode       string           `json:"exp_qic" binding:"required,exportercode" example:"048"`
	HarvestYear        string           `json:"cosecha" binding:"required,max=20" example:"2025-2026"`
	SacksWashed        decimal.Decimal  `json:"sacos46l" swaggertype:"string" example:"20"`
	ValueWashedLocal   decimal.Decimal  `json:"valorlemp" swaggertype:"string" example:"5000"`
	SacksUnwashed      decimal.Decimal  `json:"sacos46c" swaggertype:"string" example:"0"`
	ValueUnwashedLocal decimal.Decimal  `json:"valorelemp" swaggertype:"string" example:"0"`
	Region             *string          `json:"sede,omitempty" binding:"omitempty,max=100"`
	CumulativeSacksNew *decimal.Decimal `json:"nuevo_acumulado_sacos,omitempty" swaggertype:"string"`
	Notes              *string          `json:"observaciones,omitempty" binding:"omitempty,max=1000"`
}

// ToDomain converts the request into a domain.PurchaseSubmission. Date must
// already be validated by binding.
func (r CreatePurchaseRequest) ToDomain() (domain.PurchaseSubmission, error) {
	date, err := domain.ParseCalendarDate(r.Date)
	if err != nil {
		return domain.PurchaseSubmission{}, err
	}
	return domain.PurchaseSubmission{
		ExporterCode:       r.ExporterCode,
		HarvestYear:        r.HarvestYear,
		PurchaseDate:       date,
		SacksWashed:        r.SacksWashed,
		ValueWashedLocal:   r.ValueWashedLocal,
		SacksUnwashed:      r.SacksUnwashed,
		ValueUnwashedLocal: r.ValueUnwashedLocal,
		Region:             r.Region,
		CumulativeSacksNew: r.CumulativeSacksNew,
		Notes:              r.Notes,
	}, nil
}

// ListPurchasesParams defines query parameters for listing ledger rows.
type ListPurchasesParams struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

// PurchasesByDateParams selects the rows of one exporter on one day.
type PurchasesByDateParams struct {
	Date         string `form:"fecha" binding:"required,datetime=2006-01-02"`
	ExporterCode string `form:"exp_qic" binding:"required,exportercode"`
}

// ExportPurchasesParams selects the rows written to a spreadsheet export.
type ExportPurchasesParams struct {
	From         string `form:"desde" binding:"required,datetime=2006-01-02"`
	To           string `form:"hasta" binding:"required,datetime=2006-01-02"`
	ExporterCode string `form:"exp_qic" binding:"omitempty,exportercode"`
}

// ToDomain converts the query into a domain.PurchaseExportFilter.
func (p ExportPurchasesParams) ToDomain() (domain.PurchaseExportFilter, error) {
	from, err := domain.ParseCalendarDate(p.From)
	if err != nil {
		return domain.PurchaseExportFilter{}, err
	}
	to, err := domain.ParseCalendarDate(p.To)
	if err != nil {
		return domain.PurchaseExportFilter{}, err
	}
	filter := domain.PurchaseExportFilter{From: from, To: to}
	if p.ExporterCode != "" {
		code := p.ExporterCode
		filter.ExporterCode = &code
	}
	return filter, nil
}

// NextReportNumberResponse previews the next report number.
type NextReportNumberResponse struct {
	NextReportNumber string `json:"proximo_reg_compa" example:"0007/048"`
}

// LedgerEntryResponse is one ledger row in the legacy frontend format.
type LedgerEntryResponse struct {
	EntryID            int64            `json:"id_registro"`
	ReportNumber       string           `json:"reg_compa"`
	SequenceNumber     string           `json:"registro"`
	ExporterCode       string           `json:"exp_qic"`
	HarvestYear        string           `json:"cosecha"`
	Date               string           `json:"fecha"`
	SacksWashed        decimal.Decimal  `json:"sacos46l" swaggertype:"string"`
	ValueWashedLocal   decimal.Decimal  `json:"valorlemp" swaggertype:"string"`
	SacksUnwashed      decimal.Decimal  `json:"sacos46c" swaggertype:"string"`
	ValueUnwashedLocal decimal.Decimal  `json:"valorelemp" swaggertype:"string"`
	Class              string           `json:"clase"`
	Region             *string          `json:"sede"`
	CumulativeSacksNew *decimal.Decimal `json:"nuevo_acumulado_sacos" swaggertype:"string"`
	Notes              *string          `json:"observaciones"`
	ThisEntrySacks     decimal.Decimal  `json:"este_registro_sacos" swaggertype:"string"`
	CreatedAt          time.Time        `json:"fecha_registro"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:            e.EntryID,
		ReportNumber:       e.ReportNumber,
		SequenceNumber:     e.SequenceNumber,
		ExporterCode:       e.ExporterCode,
		HarvestYear:        e.HarvestYear,
		Date:               e.PurchaseDate.Format(domain.DateLayout),
		SacksWashed:        e.SacksWashed,
		ValueWashedLocal:   e.ValueWashedLocal,
		SacksUnwashed:      e.SacksUnwashed,
		ValueUnwashedLocal: e.ValueUnwashedLocal,
		Class:              string(e.Class),
		Region:             e.Region,
		CumulativeSacksNew: e.CumulativeSacksNew,
		Notes:              e.Notes,
		ThisEntrySacks:     e.ThisEntrySacks,
		CreatedAt:          e.CreatedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of domain.LedgerEntry to LedgerEntryResponse DTOs
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// PayDetailResponse is the payment derived from a submission.
type PayDetailResponse struct {
	TotalSacks   decimal.Decimal `json:"total_sacos" swaggertype:"string" example:"20"`
	ExchangeRate decimal.Decimal `json:"tasa_cambio_usd_hnl" swaggertype:"string" example:"24.56"`
	Amount       decimal.Decimal `json:"detalle_pago_calculado" swaggertype:"string" example:"5157.6"`
}

// ToPayDetailResponse converts a domain.PayDetail to PayDetailResponse DTO
func ToPayDetailResponse(p *domain.PayDetail) PayDetailResponse {
	return PayDetailResponse{
		TotalSacks:   p.TotalSacks,
		ExchangeRate: p.ExchangeRate,
		Amount:       p.Amount,
	}
}

// PurchaseRegistrationResponse is returned after a submission is committed.
type PurchaseRegistrationResponse struct {
	Message      string                `json:"mensaje"`
	Entries      []LedgerEntryResponse `json:"registros"`
	ReportNumber string                `json:"reg_compa"`
	PayDetail    PayDetailResponse     `json:"detalle_pago"`
}

// ToPurchaseRegistrationResponse converts a domain.PurchaseRegistration to its response DTO
func ToPurchaseRegistrationResponse(r *domain.PurchaseRegistration) PurchaseRegistrationResponse {
	return PurchaseRegistrationResponse{
		Message:      MsgPurchaseRegistered,
		Entries:      ToListLedgerEntryResponse(r.Entries),
		ReportNumber: r.ReportNumber,
		PayDetail:    ToPayDetailResponse(&r.PayDetail),
	}
}
