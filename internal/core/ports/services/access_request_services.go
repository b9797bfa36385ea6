package services

import (
	"context"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
)

// AccessRequestSubmitterSvc is the public side of the workflow
type AccessRequestSubmitterSvc interface {
	// SubmitAccessRequest stores a new pending request. An email already used by
	// a request or a user yields apperrors.ErrDuplicate.
	SubmitAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error)
}

// AccessRequestReviewerSvc is the administrator side of the workflow
type AccessRequestReviewerSvc interface {
	ListPendingAccessRequests(ctx context.Context, limit, offset int) ([]domain.AccessRequest, error)
	GetAccessRequest(ctx context.Context, requestID int64) (*domain.AccessRequest, error)

	// ApproveAccessRequest creates the exporter's editor account and marks the
	// request approved in one transaction.
	ApproveAccessRequest(ctx context.Context, requestID int64, adminID string) (*domain.AccessApproval, error)

	RejectAccessRequest(ctx context.Context, requestID int64, reason, adminID string) (*domain.AccessRequest, error)
}

// AccessRequestSvcFacade combines all access request service interfaces
type AccessRequestSvcFacade interface {
	AccessRequestSubmitterSvc
	AccessRequestReviewerSvc
}
