package repositories

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerEntryReader defines read operations for purchase ledger rows
type LedgerEntryReader interface {
	FindLedgerEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error)

	// ListLedgerEntries returns rows newest purchase date first.
	ListLedgerEntries(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error)

	// FindLedgerEntriesByDate returns one exporter's rows for a purchase date, ordered by class.
	FindLedgerEntriesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error)

	// ListLedgerEntriesForExport returns rows within filter's date range, oldest first.
	ListLedgerEntriesForExport(ctx context.Context, filter domain.PurchaseExportFilter) ([]domain.LedgerEntry, error)
}

// ReportSequenceAllocator hands out report sequence numbers
type ReportSequenceAllocator interface {
	// PeekNextSequence returns the number the next allocation would receive. It reserves nothing.
	PeekNextSequence(ctx context.Context) (int64, error)

	// NextSequenceInTx allocates the next number inside tx. The counter row stays
	// locked until tx ends, and a rollback releases the number.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx) (int64, error)
}

// LedgerEntryTxWriter defines ledger writes inside a caller-owned transaction
type LedgerEntryTxWriter interface {
	// InsertLedgerEntriesInTx inserts entries and returns them with store-assigned
	// IDs, timestamps and derived sack totals.
	InsertLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error)
}

// PurchaseRepositoryFacade combines all purchase ledger repository interfaces
type PurchaseRepositoryFacade interface {
	LedgerEntryReader
	ReportSequenceAllocator
	LedgerEntryTxWriter
}

// PurchaseRepositoryWithTx extends PurchaseRepositoryFacade with transaction capabilities
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
