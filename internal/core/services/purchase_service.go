package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
	"github.com/cafehnd/cafehnd_backend/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// purchaseService records purchase submissions in the ledger.
type purchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	rateSvc      portssvc.ExchangeRateLookupSvc
	pricePerSack decimal.Decimal
}

// NewPurchaseService creates a PurchaseSvcFacade.
func NewPurchaseService(cfg *config.Config, purchaseRepo portsrepo.PurchaseRepositoryWithTx, rateSvc portssvc.ExchangeRateLookupSvc) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		BaseService:  newBaseService(cfg),
		purchaseRepo: purchaseRepo,
		rateSvc:      rateSvc,
		pricePerSack: cfg.PayPricePerSack,
	}
}

// Ensure purchaseService implements the portssvc.PurchaseSvcFacade interface
var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) RegisterPurchase(ctx context.Context, sub domain.PurchaseSubmission, actor domain.Identity) (*domain.PurchaseRegistration, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("exporter_code", sub.ExporterCode),
		slog.String("purchase_date", sub.PurchaseDate.Format(domain.DateLayout)),
	)

	if err := sub.Validate(); err != nil {
		metrics.RecordPurchaseSubmission("invalid")
		return nil, err
	}
	if err := actor.AuthorizeLedgerWrite(sub.ExporterCode); err != nil {
		logger.Warn("Purchase submission not authorized", slog.String("user_id", actor.UserID))
		metrics.RecordPurchaseSubmission("forbidden")
		return nil, err
	}

	rate, err := s.rateSvc.GetExchangeRate(ctx, sub.PurchaseDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			logger.Warn("No exchange rate for purchase date")
			metrics.RecordPurchaseSubmission("rate_not_found")
			return nil, err
		}
		logger.Error("Failed to resolve exchange rate", slog.String("error", err.Error()))
		metrics.RecordPurchaseSubmission("error")
		return nil, fmt.Errorf("failed to resolve exchange rate: %w", err)
	}

	if len(sub.QualifyingClasses()) == 0 {
		metrics.RecordPurchaseSubmission("no_valid_data")
		return nil, apperrors.ErrNoValidData
	}

	entries, err := s.persistSubmission(ctx, sub, actor.UserID)
	if err != nil {
		logger.Error("Failed to register purchase", slog.String("error", err.Error()))
		metrics.RecordPurchaseSubmission("error")
		return nil, err
	}

	registration := &domain.PurchaseRegistration{
		ReportNumber: entries[0].ReportNumber,
		Entries:      entries,
		PayDetail:    domain.CalculatePayDetail(sub.TotalSacks(), rate, s.pricePerSack),
	}

	metrics.RecordPurchaseSubmission("registered")
	for _, e := range entries {
		metrics.RecordLedgerEntry(string(e.Class))
	}
	logger.Info("Purchase registered",
		slog.String("report_number", registration.ReportNumber),
		slog.Int("entries", len(entries)),
		slog.String("user_id", actor.UserID))
	return registration, nil
}

// persistSubmission allocates the sequence and inserts all rows in one transaction.
func (s *purchaseService) persistSubmission(ctx context.Context, sub domain.PurchaseSubmission, createdBy string) ([]domain.LedgerEntry, error) {
	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start purchase transaction: %w", err)
	}
	// A cancelled request must still release the counter row lock.
	defer func() {
		_ = s.purchaseRepo.Rollback(context.WithoutCancel(ctx), tx)
	}()

	sequence, err := s.purchaseRepo.NextSequenceInTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	entries, err := sub.BuildEntries(sequence, createdBy)
	if err != nil {
		return nil, err
	}

	saved, err := s.purchaseRepo.InsertLedgerEntriesInTx(ctx, tx, entries)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *purchaseService) CalculatePayDetail(ctx context.Context, totalSacks decimal.Decimal, date time.Time) (*domain.PayDetail, error) {
	if totalSacks.IsNegative() {
		return nil, fmt.Errorf("%w: total sacks must not be negative", apperrors.ErrValidation)
	}
	rate, err := s.rateSvc.GetExchangeRate(ctx, date)
	if err != nil {
		return nil, err
	}
	detail := domain.CalculatePayDetail(totalSacks, rate, s.pricePerSack)
	return &detail, nil
}

func (s *purchaseService) PreviewNextReportNumber(ctx context.Context, exporterCode string) (string, error) {
	exporterCode = strings.TrimSpace(exporterCode)
	if exporterCode == "" {
		return "", fmt.Errorf("%w: exporter code is required", apperrors.ErrValidation)
	}
	next, err := s.purchaseRepo.PeekNextSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to preview report number: %w", err)
	}
	return domain.FormatReportNumber(next, exporterCode), nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	return s.purchaseRepo.FindLedgerEntryByID(ctx, entryID)
}

func (s *purchaseService) ListPurchases(ctx context.Context, limit, offset int) ([]domain.LedgerEntry, error) {
	limit, offset, err := s.NormalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []domain.LedgerEntry{}, nil
	}
	entries, err := s.purchaseRepo.ListLedgerEntries(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

func (s *purchaseService) ListPurchasesByDate(ctx context.Context, date time.Time, exporterCode string) ([]domain.LedgerEntry, error) {
	if strings.TrimSpace(exporterCode) == "" {
		return nil, fmt.Errorf("%w: exporter code is required", apperrors.ErrValidation)
	}
	entries, err := s.purchaseRepo.FindLedgerEntriesByDate(ctx, domain.CalendarDate(date), exporterCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases by date: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}
