package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portsrepo "github.com/cafehnd/cafehnd_backend/internal/core/ports/repositories"
	"github.com/cafehnd/cafehnd_backend/internal/models"
	"github.com/cafehnd/cafehnd_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userSelect = `
	SELECT u.user_id, u.full_name, u.email, u.password_hash, u.role_id, u.entity_id, e.name,
	       u.exporter_code, u.is_active, u.created_at, u.created_by, u.last_login_at
	FROM users u
	JOIN entities e ON e.entity_id = u.entity_id`

type PgxUserRepository struct {
	BaseRepository
}

func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryWithTx
var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, userSelect+" WHERE "+where+";", arg).Scan(
		&m.UserID, &m.FullName, &m.Email, &m.PasswordHash, &m.RoleID, &m.EntityID, &m.EntityName,
		&m.ExporterCode, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user, err := mapping.ToDomainUser(m)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := r.findOne(ctx, "u.user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "LOWER(u.email) = LOWER($1)", email)
}

func (r *PgxUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1));`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role_id = $1 AND is_active);`, domain.RoleAdmin.ID(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for administrators: %w", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE user_id = $1;`, userID, at)
	if err != nil {
		return fmt.Errorf("failed to record login for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveUserInTx inserts user inside tx.
func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := tx.Exec(ctx, `
		INSERT INTO users (
			user_id, full_name, email, password_hash, role_id, entity_id,
			exporter_code, is_active, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.UserID, m.FullName, m.Email, m.PasswordHash, m.RoleID, m.EntityID,
		m.ExporterCode, m.IsActive, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindOrCreateEntityInTx inserts the entity if missing and reads it back. A
// concurrent insert of the same name is absorbed by ON CONFLICT.
func (r *PgxUserRepository) FindOrCreateEntityInTx(ctx context.Context, tx pgx.Tx, name string, entityType domain.EntityType) (*domain.Entity, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO entities (name, entity_type) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;`,
		name, string(entityType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create entity %q: %w", name, err)
	}

	var m models.Entity
	err = tx.QueryRow(ctx,
		`SELECT entity_id, name, entity_type, created_at FROM entities WHERE name = $1;`, name,
	).Scan(&m.EntityID, &m.Name, &m.EntityType, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity %q: %w", name, err)
	}

	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}
