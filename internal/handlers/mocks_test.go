package handlers_test

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) GetPurchase(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockPurchaseService) ListPurchases(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockPurchaseService) ListPurchasesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, date, exporterCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockPurchaseService) PreviewNextReportNumber(ctx context.Context, exporterCode string) (string, error) {
	args := m.Called(ctx, exporterCode)
	return args.String(0), args.Error(1)
}
func (m *MockPurchaseService) RegisterPurchase(ctx context.Context, sub domain.PurchaseSubmission, actor domain.Identity) (*domain.PurchaseRegistration, error) {
	args := m.Called(ctx, sub, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRegistration), args.Error(1)
}
func (m *MockPurchaseService) CalculatePayDetail(ctx context.Context, totalSacks decimal.Decimal, date time.Time) (*domain.PayDetail, error) {
	args := m.Called(ctx, totalSacks, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayDetail), args.Error(1)
}
func (m *MockPurchaseService) ExportPurchases(ctx context.Context, filter domain.PurchaseExportFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.PurchaseSvcFacade = (*MockPurchaseService)(nil)

type MockMarketCloseService struct {
	mock.Mock
}

func (m *MockMarketCloseService) GetMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketClose), args.Error(1)
}
func (m *MockMarketCloseService) GetLatestMarketClose(ctx context.Context) (*domain.MarketClose, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketClose), args.Error(1)
}
func (m *MockMarketCloseService) ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketClose), args.Error(1)
}
func (m *MockMarketCloseService) RecordMarketClose(ctx context.Context, mc domain.MarketClose, userID string) (*domain.MarketClose, error) {
	args := m.Called(ctx, mc, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketClose), args.Error(1)
}

var _ portssvc.MarketCloseSvcFacade = (*MockMarketCloseService)(nil)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}
func (m *MockUserService) EnsureBootstrapAdmin(ctx context.Context, fullName, email, password string) (bool, error) {
	args := m.Called(ctx, fullName, email, password)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

type MockAccessRequestService struct {
	mock.Mock
}

func (m *MockAccessRequestService) SubmitAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestService) ListPendingAccessRequests(ctx context.Context, limit, offset int) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestService) GetAccessRequest(ctx context.Context, requestID int64) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}
func (m *MockAccessRequestService) ApproveAccessRequest(ctx context.Context, requestID int64, adminID string) (*domain.AccessApproval, error) {
	args := m.Called(ctx, requestID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessApproval), args.Error(1)
}
func (m *MockAccessRequestService) RejectAccessRequest(ctx context.Context, requestID int64, reason, adminID string) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID, reason, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

var _ portssvc.AccessRequestSvcFacade = (*MockAccessRequestService)(nil)
