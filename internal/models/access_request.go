package models

import (
	"database/sql"
	"time"
)

// AccessRequest is a row of the access_requests table.
type AccessRequest struct {
	RequestID       int64          `db:"request_id"`
	FullName        string         `db:"full_name"`
	CorporateEmail  string         `db:"corporate_email"`
	ExporterName    string         `db:"exporter_name"`
	ExporterCode    string         `db:"exporter_code"`
	Position        sql.NullString `db:"position"`
	Phone           sql.NullString `db:"phone"`
	Status          string         `db:"status"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	RequestedAt     time.Time      `db:"requested_at"`
	RespondedAt     sql.NullTime   `db:"responded_at"`
	RespondedBy     sql.NullString `db:"responded_by"`
	CreatedUserID   sql.NullString `db:"created_user_id"`
}
