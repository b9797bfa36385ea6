package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/utils"
	"github.com/google/uuid"
)

type accessRequestService struct {
	BaseService
	requestRepo portsrepo.AccessRequestRepositoryWithTx
	userRepo    portsrepo.UserRepositoryFacade
}

// NewAccessRequestService creates an AccessRequestSvcFacade.
func NewAccessRequestService(requestRepo portsrepo.AccessRequestRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade) portssvc.AccessRequestSvcFacade {
	return &accessRequestService{requestRepo: requestRepo, userRepo: userRepo}
}

var _ portssvc.AccessRequestSvcFacade = (*accessRequestService)(nil)

func (s *accessRequestService) SubmitAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error) {
	req.CorporateEmail = strings.TrimSpace(req.CorporateEmail)
	req.ExporterCode = strings.TrimSpace(req.ExporterCode)
	if req.CorporateEmail == "" || req.ExporterCode == "" || strings.TrimSpace(req.ExporterName) == "" {
		return nil, fmt.Errorf("%w: email, exporter name and exporter code are required", apperrors.ErrValidation)
	}

	requested, err := s.requestRepo.EmailRequested(ctx, req.CorporateEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if requested {
		return nil, fmt.Errorf("%w: an access request for this email already exists", apperrors.ErrDuplicate)
	}

	registered, err := s.userRepo.EmailExists(ctx, req.CorporateEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if registered {
		return nil, fmt.Errorf("%w: this email is already registered", apperrors.ErrDuplicate)
	}

	req.Status = domain.AccessRequestPending
	req.RequestedAt = time.Now().UTC()

	saved, err := s.requestRepo.SaveAccessRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Access request submitted",
		slog.Int64("request_id", saved.RequestID),
		slog.String("exporter_code", saved.ExporterCode))
	return saved, nil
}

func (s *accessRequestService) ListPendingAccessRequests(ctx context.Context, limit, offset int) ([]domain.AccessRequest, error) {
	limit, offset, err := s.NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []domain.AccessRequest{}, nil
	}
	reqs, err := s.requestRepo.ListAccessRequestsByStatus(ctx, domain.AccessRequestPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending access requests: %w", err)
	}
	return reqs, nil
}

func (s *accessRequestService) GetAccessRequest(ctx context.Context, requestID int64) (*domain.AccessRequest, error) {
	return s.requestRepo.FindAccessRequestByID(ctx, requestID)
}

func (s *accessRequestService) ApproveAccessRequest(ctx context.Context, requestID int64, adminID string) (*domain.AccessApproval, error) {
	logger := s.GetLogger(ctx).With(slog.Int64("request_id", requestID))

	tempPassword, err := utils.GenerateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	passwordHash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	tx, err := s.requestRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.requestRepo.Rollback(context.WithoutCancel(ctx), tx)
	}()

	req, err := s.requestRepo.FindPendingAccessRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}

	entity, err := s.userRepo.FindOrCreateEntityInTx(ctx, tx, req.ExporterName, domain.EntityExporter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	exporterCode := req.ExporterCode
	user := domain.User{
		UserID:       uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.CorporateEmail,
		PasswordHash: passwordHash,
		Role:         domain.RoleExporterEditor,
		EntityID:     entity.EntityID,
		EntityName:   entity.Name,
		ExporterCode: &exporterCode,
		IsActive:     true,
		CreatedAt:    now,
		CreatedBy:    adminID,
	}
	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := s.requestRepo.MarkAccessRequestApprovedInTx(ctx, tx, requestID, adminID, user.UserID, now); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	req.Status = domain.AccessRequestApproved
	req.RespondedAt = &now
	req.RespondedBy = &adminID
	req.CreatedUserID = &user.UserID

	logger.Info("Access request approved", slog.String("user_id", user.UserID), slog.String("approved_by", adminID))
	return &domain.AccessApproval{Request: *req, User: user, TemporaryPassword: tempPassword}, nil
}

func (s *accessRequestService) RejectAccessRequest(ctx context.Context, requestID int64, reason, adminID string) (*domain.AccessRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
	}

	req, err := s.requestRepo.RejectAccessRequest(ctx, requestID, reason, adminID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Access request rejected", slog.Int64("request_id", requestID), slog.String("rejected_by", adminID))
	return req, nil
}
