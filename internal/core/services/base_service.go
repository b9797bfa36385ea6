package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
)

// Upper bound on list page size.
const maxListLimit = 500

// BaseService provides common functionality for all services
type BaseService struct {
	// MaxListLimit caps list page sizes. Zero means maxListLimit.
	MaxListLimit int
}

func newBaseService(cfg *config.Config) BaseService {
	if cfg == nil {
		return BaseService{}
	}
	return BaseService{MaxListLimit: cfg.PurchaseListMaxLimit}
}

// GetLogger gets the request-scoped logger from context
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// NormalizePage validates offset and limit and applies the cap. A zero
// limit stays zero and callers return an empty page for it.
func (s *BaseService) NormalizePage(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, fmt.Errorf("%w: limit and offset must not be negative", apperrors.ErrValidation)
	}
	maxLimit := s.MaxListLimit
	if maxLimit <= 0 {
		maxLimit = maxListLimit
	}
	return min(limit, maxLimit), offset, nil
}
