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
	"github.com/shopspring/decimal"
)

const marketCloseColumns = `
	close_id, close_date, price_usd_per_sack, exchange_rate, position_prices,
	price_source, rate_source, created_at, created_by, last_updated_at, last_updated_by`

// PgxMarketCloseRepository implements portsrepo.MarketCloseRepositoryFacade using pgxpool.
type PgxMarketCloseRepository struct {
	BaseRepository
}

// NewPgxMarketCloseRepository creates a new PgxMarketCloseRepository.
func NewPgxMarketCloseRepository(pool *pgxpool.Pool) *PgxMarketCloseRepository {
	return &PgxMarketCloseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MarketCloseRepositoryFacade = (*PgxMarketCloseRepository)(nil)

func scanMarketClose(row rowScanner) (models.MarketClose, error) {
	var m models.MarketClose
	err := row.Scan(
		&m.CloseID, &m.CloseDate, &m.PriceUSDPerSack, &m.ExchangeRate, &m.PositionPrices,
		&m.PriceSource, &m.RateSource, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxMarketCloseRepository) findOne(ctx context.Context, query string, args ...any) (*domain.MarketClose, error) {
	m, err := scanMarketClose(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find market close: %w", err)
	}
	mc := mapping.ToDomainMarketClose(m)
	return &mc, nil
}

// UpsertMarketClose inserts or replaces the close for mc.CloseDate.
// CreatedAt/CreatedBy are kept from the first insert.
func (r *PgxMarketCloseRepository) UpsertMarketClose(ctx context.Context, mc domain.MarketClose) (*domain.MarketClose, error) {
	m := mapping.ToModelMarketClose(mc)
	query := `
		INSERT INTO market_closes (
			close_date, price_usd_per_sack, exchange_rate, position_prices, price_source, rate_source,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (close_date) DO UPDATE SET
			price_usd_per_sack = EXCLUDED.price_usd_per_sack,
			exchange_rate = EXCLUDED.exchange_rate,
			position_prices = EXCLUDED.position_prices,
			price_source = EXCLUDED.price_source,
			rate_source = EXCLUDED.rate_source,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + marketCloseColumns + `;`

	saved, err := scanMarketClose(r.Pool.QueryRow(ctx, query,
		domain.CalendarDate(m.CloseDate), m.PriceUSDPerSack, m.ExchangeRate, m.PositionPrices,
		m.PriceSource, m.RateSource, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert market close for %s: %w", m.CloseDate.Format(domain.DateLayout), err)
	}

	result := mapping.ToDomainMarketClose(saved)
	return &result, nil
}

// FindMarketCloseByDate retrieves the close recorded for date.
func (r *PgxMarketCloseRepository) FindMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error) {
	return r.findOne(ctx,
		`SELECT `+marketCloseColumns+` FROM market_closes WHERE close_date = $1;`,
		domain.CalendarDate(date))
}

// FindLatestMarketClose retrieves the most recent close.
func (r *PgxMarketCloseRepository) FindLatestMarketClose(ctx context.Context) (*domain.MarketClose, error) {
	return r.findOne(ctx,
		`SELECT `+marketCloseColumns+` FROM market_closes ORDER BY close_date DESC LIMIT 1;`)
}

// ListMarketCloses returns a page of closes, newest first.
func (r *PgxMarketCloseRepository) ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+marketCloseColumns+`
		FROM market_closes
		ORDER BY close_date DESC
		LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list market closes: %w", err)
	}
	defer rows.Close()

	closes := []domain.MarketClose{}
	for rows.Next() {
		m, err := scanMarketClose(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market close: %w", err)
		}
		closes = append(closes, mapping.ToDomainMarketClose(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market closes: %w", err)
	}
	return closes, nil
}

// FindExchangeRateByDate returns the exchange rate recorded for exactly date.
func (r *PgxMarketCloseRepository) FindExchangeRateByDate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	var rate decimal.NullDecimal
	err := r.Pool.QueryRow(ctx,
		`SELECT exchange_rate FROM market_closes WHERE close_date = $1;`,
		domain.CalendarDate(date),
	).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrRateNotFound, date.Format(domain.DateLayout))
		}
		return decimal.Zero, fmt.Errorf("failed to read exchange rate for %s: %w", date.Format(domain.DateLayout), err)
	}
	if !rate.Valid {
		return decimal.Zero, fmt.Errorf("%w: %s has no rate", apperrors.ErrRateNotFound, date.Format(domain.DateLayout))
	}
	return rate.Decimal, nil
}
