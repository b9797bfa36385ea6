package dto

import (
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
)

// UserResponse defines the profile returned for a user. The password hash is never exposed.
type UserResponse struct {
	UserID       string     `json:"id_usuario"`
	FullName     string     `json:"nombre_completo"`
	Email        string     `json:"email"`
	Role         string     `json:"rol"`
	EntityID     int64      `json:"id_entidad"`
	EntityName   string     `json:"nombre_entidad"`
	ExporterCode *string    `json:"exp_qic,omitempty"`
	IsActive     bool       `json:"activo"`
	CreatedAt    time.Time  `json:"fecha_creacion"`
	LastLoginAt  *time.Time `json:"ultimo_login,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		EntityID:     u.EntityID,
		EntityName:   u.EntityName,
		ExporterCode: u.ExporterCode,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}
