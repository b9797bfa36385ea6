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

const accessRequestColumns = `
	request_id, full_name, corporate_email, exporter_name, exporter_code, position, phone,
	status, rejection_reason, requested_at, responded_at, responded_by, created_user_id`

// PgxAccessRequestRepository stores exporter access requests.
type PgxAccessRequestRepository struct {
	BaseRepository
}

func NewPgxAccessRequestRepository(pool *pgxpool.Pool) *PgxAccessRequestRepository {
	return &PgxAccessRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccessRequestRepositoryWithTx = (*PgxAccessRequestRepository)(nil)

func scanAccessRequest(row rowScanner) (models.AccessRequest, error) {
	var m models.AccessRequest
	err := row.Scan(
		&m.RequestID, &m.FullName, &m.CorporateEmail, &m.ExporterName, &m.ExporterCode, &m.Position, &m.Phone,
		&m.Status, &m.RejectionReason, &m.RequestedAt, &m.RespondedAt, &m.RespondedBy, &m.CreatedUserID,
	)
	return m, err
}

func accessRequestOrNotFound(m models.AccessRequest, err error, requestID int64) (*domain.AccessRequest, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: access request %d", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to read access request %d: %w", requestID, err)
	}
	req := mapping.ToDomainAccessRequest(m)
	return &req, nil
}

func (r *PgxAccessRequestRepository) FindAccessRequestByID(ctx context.Context, requestID int64) (*domain.AccessRequest, error) {
	m, err := scanAccessRequest(r.Pool.QueryRow(ctx,
		`SELECT `+accessRequestColumns+` FROM access_requests WHERE request_id = $1;`, requestID))
	return accessRequestOrNotFound(m, err, requestID)
}

func (r *PgxAccessRequestRepository) ListAccessRequestsByStatus(ctx context.Context, status domain.AccessRequestStatus, limit, offset int) ([]domain.AccessRequest, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+accessRequestColumns+`
		FROM access_requests
		WHERE status = $1
		ORDER BY requested_at, request_id
		LIMIT $2 OFFSET $3;`, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list access requests: %w", err)
	}
	defer rows.Close()

	var ms []models.AccessRequest
	for rows.Next() {
		m, err := scanAccessRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access request: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access requests: %w", err)
	}
	return mapping.ToDomainAccessRequestSlice(ms), nil
}

func (r *PgxAccessRequestRepository) EmailRequested(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM access_requests WHERE LOWER(corporate_email) = LOWER($1));`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check access request email: %w", err)
	}
	return exists, nil
}

func (r *PgxAccessRequestRepository) SaveAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error) {
	m := mapping.ToModelAccessRequest(req)
	saved, err := scanAccessRequest(r.Pool.QueryRow(ctx, `
		INSERT INTO access_requests (
			full_name, corporate_email, exporter_name, exporter_code, position, phone, status, requested_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+accessRequestColumns+`;`,
		m.FullName, m.CorporateEmail, m.ExporterName, m.ExporterCode, m.Position, m.Phone, m.Status, m.RequestedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: an access request for %s already exists", apperrors.ErrDuplicate, req.CorporateEmail)
		}
		return nil, fmt.Errorf("failed to save access request: %w", err)
	}
	result := mapping.ToDomainAccessRequest(saved)
	return &result, nil
}

// RejectAccessRequest only touches pending rows, so a concurrent approval wins.
func (r *PgxAccessRequestRepository) RejectAccessRequest(ctx context.Context, requestID int64, reason, rejectedBy string, at time.Time) (*domain.AccessRequest, error) {
	m, err := scanAccessRequest(r.Pool.QueryRow(ctx, `
		UPDATE access_requests
		SET status = $2, rejection_reason = $3, responded_by = $4, responded_at = $5
		WHERE request_id = $1 AND status = $6
		RETURNING `+accessRequestColumns+`;`,
		requestID, string(domain.AccessRequestRejected), reason, rejectedBy, at, string(domain.AccessRequestPending),
	))
	return accessRequestOrNotFound(m, err, requestID)
}

func (r *PgxAccessRequestRepository) FindPendingAccessRequestForUpdate(ctx context.Context, tx pgx.Tx, requestID int64) (*domain.AccessRequest, error) {
	m, err := scanAccessRequest(tx.QueryRow(ctx, `
		SELECT `+accessRequestColumns+`
		FROM access_requests
		WHERE request_id = $1 AND status = $2
		FOR UPDATE;`, requestID, string(domain.AccessRequestPending)))
	return accessRequestOrNotFound(m, err, requestID)
}

func (r *PgxAccessRequestRepository) MarkAccessRequestApprovedInTx(ctx context.Context, tx pgx.Tx, requestID int64, approvedBy, createdUserID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE access_requests
		SET status = $2, responded_by = $3, responded_at = $4, created_user_id = $5
		WHERE request_id = $1;`,
		requestID, string(domain.AccessRequestApproved), approvedBy, at, createdUserID,
	)
	if err != nil {
		return fmt.Errorf("failed to approve access request %d: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: access request %d", apperrors.ErrNotFound, requestID)
	}
	return nil
}
