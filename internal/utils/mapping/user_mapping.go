package mapping

import (
	"fmt"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		RoleID:       d.Role.ID(),
		EntityID:     d.EntityID,
		EntityName:   d.EntityName,
		ExporterCode: toNullString(d.ExporterCode),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
		LastLoginAt:  toNullTime(d.LastLoginAt),
	}
}

// ToDomainUser converts a model User to a domain User. It fails only on an
// unknown role id.
func ToDomainUser(m models.User) (domain.User, error) {
	role, err := domain.RoleFromID(m.RoleID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", m.UserID, err)
	}
	return domain.User{
		UserID:       m.UserID,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         role,
		EntityID:     m.EntityID,
		EntityName:   m.EntityName,
		ExporterCode: fromNullString(m.ExporterCode),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
		LastLoginAt:  fromNullTime(m.LastLoginAt),
	}, nil
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:  m.EntityID,
		Name:      m.Name,
		Type:      domain.EntityType(m.EntityType),
		CreatedAt: m.CreatedAt,
	}
}
