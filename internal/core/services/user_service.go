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
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
	"github.com/cafehnd/cafehnd_backend/internal/utils"
	"github.com/google/uuid"
)

// bootstrapCreator is recorded as the creator of the bootstrap administrator.
const bootstrapCreator = "system"

// dummyPasswordHash is compared against when the email is unknown, so both
// failure paths cost one bcrypt comparison.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3bVt1Y0xJxK1Q2YjQyrU6bW"

type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryWithTx
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewUserService creates a UserSvcFacade.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryWithTx) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	logger := s.GetLogger(ctx)
	invalid := fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.CheckPasswordHash(password, dummyPasswordHash)
			logger.Warn("Login attempt for unknown email")
			return "", nil, invalid
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) || !user.IsActive {
		logger.Warn("Login rejected", slog.String("user_id", user.UserID), slog.Bool("active", user.IsActive))
		return "", nil, invalid
	}

	token, err := utils.GenerateJWT(*user, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.RecordLogin(ctx, user.UserID, now); err != nil {
		// The token is already valid, so a stale last-login stamp is not fatal.
		s.LogError(ctx, err, "Failed to record login", slog.String("user_id", user.UserID))
	} else {
		user.LastLoginAt = &now
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return token, user, nil
}

func (s *userService) EnsureBootstrapAdmin(ctx context.Context, fullName, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	tx, err := s.userRepo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = s.userRepo.Rollback(context.WithoutCancel(ctx), tx)
	}()

	entity, err := s.userRepo.FindOrCreateEntityInTx(ctx, tx, string(domain.EntityInstitute), domain.EntityInstitute)
	if err != nil {
		return false, err
	}

	admin := domain.User{
		UserID:       uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		EntityID:     entity.EntityID,
		EntityName:   entity.Name,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    bootstrapCreator,
	}
	if err := s.userRepo.SaveUserInTx(ctx, tx, admin); err != nil {
		return false, err
	}
	if err := s.userRepo.Commit(ctx, tx); err != nil {
		return false, err
	}

	s.LogInfo(ctx, "Bootstrap administrator created", slog.String("user_id", admin.UserID))
	return true, nil
}
