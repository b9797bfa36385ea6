package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
)

// Role is a user's authorization role. Values match the roles table.
type Role string

const (
	RoleAdmin          Role = "admin_ihcafe"
	RoleExporterEditor Role = "editor_exportador"
	RoleManager        Role = "basico_gestor"
)

var roleIDs = map[Role]int16{
	RoleAdmin:          1,
	RoleExporterEditor: 2,
	RoleManager:        3,
}

// ID returns the roles table key for r, or 0 if r is unknown.
func (r Role) ID() int16 {
	return roleIDs[r]
}

// RoleFromID maps a roles table key back to its Role.
func RoleFromID(id int16) (Role, error) {
	for role, roleID := range roleIDs {
		if roleID == id {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role id %d", id)
}

// EntityType classifies the organization a user belongs to.
type EntityType string

const (
	EntityInstitute EntityType = "IHCAFE"
	EntityExporter  EntityType = "EXPORTADOR"
	EntityManager   EntityType = "GESTOR"
)

// Entity is an organization users belong to.
type Entity struct {
	EntityID  int64      `json:"entityID"`
	Name      string     `json:"name"`
	Type      EntityType `json:"type"`
	CreatedAt time.Time  `json:"createdAt"`
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	EntityID     int64      `json:"entityID"`
	EntityName   string     `json:"entityName"`
	ExporterCode *string    `json:"exporterCode,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedBy    string     `json:"createdBy"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// Identity is the authenticated caller of a request, as carried in its token.
type Identity struct {
	UserID       string
	Role         Role
	ExporterCode string
}

// AuthorizeLedgerWrite reports whether the caller may register purchases for exporterCode.
// Administrators may write for any exporter, exporter editors only for their own code.
func (i Identity) AuthorizeLedgerWrite(exporterCode string) error {
	switch i.Role {
	case RoleAdmin:
		return nil
	case RoleExporterEditor:
		if i.ExporterCode != "" && strings.EqualFold(i.ExporterCode, exporterCode) {
			return nil
		}
		return fmt.Errorf("%w: user may only register purchases for exporter %q", apperrors.ErrForbidden, i.ExporterCode)
	default:
		return fmt.Errorf("%w: role %q cannot register purchases", apperrors.ErrForbidden, i.Role)
	}
}
