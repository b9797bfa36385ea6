package services_test

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx.Tx; repository mocks never call through it.
type fakeTx struct {
	pgx.Tx
}

// --- Transaction manager ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mockTxManager
}

var _ portsrepo.PurchaseRepositoryWithTx = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindLedgerEntryByID(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockPurchaseRepository) ListLedgerEntries(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit, offset)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockPurchaseRepository) FindLedgerEntriesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, date, exporterCode)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockPurchaseRepository) ListLedgerEntriesForExport(ctx context.Context, filter domain.PurchaseExportFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockPurchaseRepository) PeekNextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) InsertLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entries)
	var saved []domain.LedgerEntry
	if args.Get(0) != nil {
		saved = args.Get(0).([]domain.LedgerEntry)
	}
	return saved, args.Error(1)
}

// --- Mock ExchangeRateLookupSvc ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetExchangeRate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ExchangeRateCache ---
type MockRateCache struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateCache = (*MockRateCache)(nil)

func (m *MockRateCache) GetExchangeRate(ctx context.Context, date time.Time) (portsrepo.CachedRate, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(portsrepo.CachedRate), args.Error(1)
}

func (m *MockRateCache) SetExchangeRate(ctx context.Context, date time.Time, rate decimal.Decimal, generation int64) error {
	args := m.Called(ctx, date, rate, generation)
	return args.Error(0)
}

func (m *MockRateCache) InvalidateExchangeRate(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

// --- Mock MarketCloseRepository ---
type MockMarketCloseRepository struct {
	mock.Mock
}

var _ portsrepo.MarketCloseRepositoryFacade = (*MockMarketCloseRepository)(nil)

func (m *MockMarketCloseRepository) FindMarketCloseByDate(ctx context.Context, date time.Time) (*domain.MarketClose, error) {
	args := m.Called(ctx, date)
	var mc *domain.MarketClose
	if args.Get(0) != nil {
		mc = args.Get(0).(*domain.MarketClose)
	}
	return mc, args.Error(1)
}

func (m *MockMarketCloseRepository) FindLatestMarketClose(ctx context.Context) (*domain.MarketClose, error) {
	args := m.Called(ctx)
	var mc *domain.MarketClose
	if args.Get(0) != nil {
		mc = args.Get(0).(*domain.MarketClose)
	}
	return mc, args.Error(1)
}

func (m *MockMarketCloseRepository) ListMarketCloses(ctx context.Context, limit, offset int) ([]domain.MarketClose, error) {
	args := m.Called(ctx, limit, offset)
	var closes []domain.MarketClose
	if args.Get(0) != nil {
		closes = args.Get(0).([]domain.MarketClose)
	}
	return closes, args.Error(1)
}

func (m *MockMarketCloseRepository) FindExchangeRateByDate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMarketCloseRepository) UpsertMarketClose(ctx context.Context, mc domain.MarketClose) (*domain.MarketClose, error) {
	args := m.Called(ctx, mc)
	var saved *domain.MarketClose
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.MarketClose)
	}
	return saved, args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mockTxManager
}

var _ portsrepo.UserRepositoryWithTx = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindOrCreateEntityInTx(ctx context.Context, tx pgx.Tx, name string, entityType domain.EntityType) (*domain.Entity, error) {
	args := m.Called(ctx, tx, name, entityType)
	var entity *domain.Entity
	if args.Get(0) != nil {
		entity = args.Get(0).(*domain.Entity)
	}
	return entity, args.Error(1)
}

// --- Mock AccessRequestRepository ---
type MockAccessRequestRepository struct {
	mockTxManager
}

var _ portsrepo.AccessRequestRepositoryWithTx = (*MockAccessRequestRepository)(nil)

func (m *MockAccessRequestRepository) FindAccessRequestByID(ctx context.Context, requestID int64) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	var req *domain.AccessRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.AccessRequest)
	}
	return req, args.Error(1)
}

func (m *MockAccessRequestRepository) ListAccessRequestsByStatus(ctx context.Context, status domain.AccessRequestStatus, limit, offset int) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	var reqs []domain.AccessRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.AccessRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockAccessRequestRepository) EmailRequested(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRequestRepository) SaveAccessRequest(ctx context.Context, req domain.AccessRequest) (*domain.AccessRequest, error) {
	args := m.Called(ctx, req)
	var saved *domain.AccessRequest
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.AccessRequest)
	}
	return saved, args.Error(1)
}

func (m *MockAccessRequestRepository) RejectAccessRequest(ctx context.Context, requestID int64, reason, rejectedBy string, at time.Time) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID, reason, rejectedBy, at)
	var req *domain.AccessRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.AccessRequest)
	}
	return req, args.Error(1)
}

func (m *MockAccessRequestRepository) FindPendingAccessRequestForUpdate(ctx context.Context, tx pgx.Tx, requestID int64) (*domain.AccessRequest, error) {
	args := m.Called(ctx, tx, requestID)
	var req *domain.AccessRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.AccessRequest)
	}
	return req, args.Error(1)
}

func (m *MockAccessRequestRepository) MarkAccessRequestApprovedInTx(ctx context.Context, tx pgx.Tx, requestID int64, approvedBy, createdUserID string, at time.Time) error {
	args := m.Called(ctx, tx, requestID, approvedBy, createdUserID, at)
	return args.Error(0)
}
