package services

import (
	"context"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Login checks credentials and returns a signed access token. Unknown
	// emails, wrong passwords and inactive users all yield apperrors.ErrUnauthorized.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserProvisioningSvc creates accounts outside the access request workflow
type UserProvisioningSvc interface {
	// EnsureBootstrapAdmin creates the first administrator when none exists.
	// It reports whether a user was created.
	EnsureBootstrapAdmin(ctx context.Context, fullName, email, password string) (bool, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserProvisioningSvc
}
