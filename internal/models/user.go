package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table joined with its entity name.
type User struct {
	UserID       string         `db:"user_id"`
	FullName     string         `db:"full_name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	RoleID       int16          `db:"role_id"`
	EntityID     int64          `db:"entity_id"`
	EntityName   string         `db:"entity_name"`
	ExporterCode sql.NullString `db:"exporter_code"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	CreatedBy    string         `db:"created_by"`
	LastLoginAt  sql.NullTime   `db:"last_login_at"`
}

// Entity is a row of the entities table.
type Entity struct {
	EntityID   int64     `db:"entity_id"`
	Name       string    `db:"name"`
	EntityType string    `db:"entity_type"`
	CreatedAt  time.Time `db:"created_at"`
}
