package repositories

import (
	"context"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether any user already uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// AdminExists reports whether at least one active administrator exists.
	AdminExists(ctx context.Context) (bool, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// RecordLogin stamps the user's last successful login.
	RecordLogin(ctx context.Context, userID string, at time.Time) error
}

// UserTxWriter defines user writes that join a caller-owned transaction
type UserTxWriter interface {
	// SaveUserInTx inserts a new user. Duplicate emails yield apperrors.ErrDuplicate.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error

	// FindOrCreateEntityInTx returns the entity named name, creating it with entityType if absent.
	FindOrCreateEntityInTx(ctx context.Context, tx pgx.Tx, name string, entityType domain.EntityType) (*domain.Entity, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTxWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
