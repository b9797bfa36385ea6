package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	"github.com/cafehnd/cafehnd_backend/internal/models"
	"github.com/cafehnd/cafehnd_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `
	entry_id, report_number, sequence_number, exporter_code, harvest_year, purchase_date,
	sacks_washed, value_washed_local, sacks_unwashed, value_unwashed_local, class, region,
	cumulative_sacks_new, this_entry_sacks, notes, created_at, created_by`

// PgxPurchaseRepository stores the purchase ledger and its report sequence counter.
type PgxPurchaseRepository struct {
	BaseRepository
}

// NewPgxPurchaseRepository creates a new PgxPurchaseRepository.
func NewPgxPurchaseRepository(pool *pgxpool.Pool) *PgxPurchaseRepository {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryWithTx
var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

func scanLedgerEntry(row rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID, &m.ReportNumber, &m.SequenceNumber, &m.ExporterCode, &m.HarvestYear, &m.PurchaseDate,
		&m.SacksWashed, &m.ValueWashedLocal, &m.SacksUnwashed, &m.ValueUnwashedLocal, &m.Class, &m.Region,
		&m.CumulativeSacksNew, &m.ThisEntrySacks, &m.Notes, &m.CreatedAt, &m.CreatedBy,
	)
	return m, err
}

func (r *PgxPurchaseRepository) queryLedgerEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var ms []models.LedgerEntry
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

// PeekNextSequence returns the sequence the next submission would receive.
func (r *PgxPurchaseRepository) PeekNextSequence(ctx context.Context) (int64, error) {
	var next int64
	err := r.Pool.QueryRow(ctx,
		`SELECT last_value + 1 FROM purchase_report_sequence WHERE sequence_id = 1;`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to read report sequence: %w", err)
	}
	return next, nil
}

// NextSequenceInTx increments the counter row inside tx. The row lock serializes
// concurrent submissions until tx commits or rolls back.
func (r *PgxPurchaseRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var next int64
	err := tx.QueryRow(ctx, `
		UPDATE purchase_report_sequence
		SET last_value = last_value + 1
		WHERE sequence_id = 1
		RETURNING last_value;
	`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate report sequence: %w", err)
	}
	return next, nil
}

// InsertLedgerEntriesInTx inserts all entries with one batch inside tx.
func (r *PgxPurchaseRepository) InsertLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	insertQuery := `
		INSERT INTO purchase_ledger_entries (
			report_number, sequence_number, exporter_code, harvest_year, purchase_date,
			sacks_washed, value_washed_local, sacks_unwashed, value_unwashed_local,
			class, region, cumulative_sacks_new, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING entry_id, this_entry_sacks, created_at;
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(insertQuery,
			m.ReportNumber, m.SequenceNumber, m.ExporterCode, m.HarvestYear, m.PurchaseDate,
			m.SacksWashed, m.ValueWashedLocal, m.SacksUnwashed, m.ValueUnwashedLocal,
			m.Class, m.Region, m.CumulativeSacksNew, m.Notes, m.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	saved := make([]domain.LedgerEntry, len(entries))
	var batchErr error
	for i, entry := range entries {
		err := br.QueryRow().Scan(&entry.EntryID, &entry.ThisEntrySacks, &entry.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				batchErr = fmt.Errorf("%w: report %s class %s", apperrors.ErrDuplicate, entry.ReportNumber, entry.Class)
			} else {
				batchErr = fmt.Errorf("failed to insert ledger entry for report %s: %w", entry.ReportNumber, err)
			}
			break
		}
		saved[i] = entry
	}

	// Close must run before tx is used again, even after a failed row.
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close ledger insert batch: %w", err)
	}
	if batchErr != nil {
		return nil, batchErr
	}
	return saved, nil
}

// FindLedgerEntryByID retrieves a single ledger row.
func (r *PgxPurchaseRepository) FindLedgerEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM purchase_ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger entry %d", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find ledger entry %d: %w", entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListLedgerEntries returns a page of rows, newest purchase date first.
func (r *PgxPurchaseRepository) ListLedgerEntries(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + `
		FROM purchase_ledger_entries
		ORDER BY purchase_date DESC, entry_id DESC
		LIMIT $1 OFFSET $2;`
	return r.queryLedgerEntries(ctx, query, limit, offset)
}

// FindLedgerEntriesByDate returns an exporter's rows for one purchase date, ordered by class.
func (r *PgxPurchaseRepository) FindLedgerEntriesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + `
		FROM purchase_ledger_entries
		WHERE purchase_date = $1 AND exporter_code = $2
		ORDER BY class, entry_id;`
	return r.queryLedgerEntries(ctx, query, domain.CalendarDate(date), exporterCode)
}

// ListLedgerEntriesForExport returns rows in [From, To], optionally for one exporter.
func (r *PgxPurchaseRepository) ListLedgerEntriesForExport(ctx context.Context, filter domain.PurchaseExportFilter) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + `
		FROM purchase_ledger_entries
		WHERE purchase_date BETWEEN $1 AND $2
		  AND ($3::text IS NULL OR exporter_code = $3)
		ORDER BY purchase_date, entry_id;`
	return r.queryLedgerEntries(ctx, query,
		domain.CalendarDate(filter.From), domain.CalendarDate(filter.To), filter.ExporterCode)
}
