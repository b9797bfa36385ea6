package repositories

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccessRequestReader defines read operations for access requests
type AccessRequestReader interface {
	FindAccessRequestByID(ctx context.Context, requestID int64) (*domain.AccessRequest, error)

	// ListAccessRequestsByStatus returns requests in status, oldest first.
	ListAccessRequestsByStatus(ctx context.Context, status domain.AccessRequestStatus, limit, offset int) ([]domain.AccessRequest, error)

	// EmailRequested reports whether a request already uses email.
	EmailRequested(ctx context.Context, email string) (bool, error)
}

// AccessRequestWriter defines write operations for access requests
type AccessRequestWriter interface {
	// SaveAccessRequest inserts a new request and returns it with its assigned ID.
	SaveAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error)

	// RejectAccessRequest moves a pending request to rejected. Non-pending or
	// missing requests yield apperrors.ErrNotFound.
	RejectAccessRequest(ctx context.Context, requestID int64, reason, rejectedBy string, at time.Time) (*domain.AccessRequest, error)
}

// AccessRequestTxWriter defines access request operations inside a caller-owned transaction
type AccessRequestTxWriter interface {
	// FindPendingAccessRequestForUpdate locks a pending request for the rest of tx.
	FindPendingAccessRequestForUpdate(ctx context.Context, tx pgx.Tx, requestID int64) (*domain.AccessRequest, error)

	// MarkAccessRequestApprovedInTx records the approval decision.
	MarkAccessRequestApprovedInTx(ctx context.Context, tx pgx.Tx, requestID int64, approvedBy, createdUserID string, at time.Time) error
}

// AccessRequestRepositoryFacade combines all access request repository interfaces
type AccessRequestRepositoryFacade interface {
	AccessRequestReader
	AccessRequestWriter
	AccessRequestTxWriter
}

// AccessRequestRepositoryWithTx extends AccessRequestRepositoryFacade with transaction capabilities
type AccessRequestRepositoryWithTx interface {
	AccessRequestRepositoryFacade
	TransactionManager
}
