package services

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseReaderSvc defines read operations for the purchase ledger
type PurchaseReaderSvc interface {
	GetPurchase(ctx context.Context, entryID int64) (*domain.LedgerEntry, error)

	// ListPurchases returns a page of rows, newest first. A zero limit selects
	// the default page size and larger limits are capped.
	ListPurchases(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error)

	ListPurchasesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error)

	// PreviewNextReportNumber returns the report number the next submission for
	// exporterCode would probably receive. Nothing is reserved.
	PreviewNextReportNumber(ctx context.Context, exporterCode string) (string, error)
}

// PurchaseWriterSvc registers purchases
type PurchaseWriterSvc interface {
	// RegisterPurchase validates and authorizes sub, resolves the exchange rate and
	// commits one ledger row per qualifying class under a fresh report number.
	RegisterPurchase(ctx context.Context, sub domain.PurchaseSubmission, actor domain.Identity) (*domain.PurchaseRegistration, error)
}

// PayCalculatorSvc previews payment without writing
type PayCalculatorSvc interface {
	CalculatePayDetail(ctx context.Context, totalSacks decimal.Decimal, date time.Time) (*domain.PayDetail, error)
}

// PurchaseExportSvc renders ledger rows as a spreadsheet
type PurchaseExportSvc interface {
	// ExportPurchases returns an .xlsx workbook of the rows matching filter.
	ExportPurchases(ctx context.Context, filter domain.PurchaseExportFilter) ([]byte, error)
}

// PurchaseSvcFacade combines all purchase ledger service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
	PayCalculatorSvc
	PurchaseExportSvc
}
