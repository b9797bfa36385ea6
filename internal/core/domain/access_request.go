package domain

import "time"

// AccessRequestStatus is the workflow state of an access request.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "PENDIENTE"
	AccessRequestApproved AccessRequestStatus = "APROBADA"
	AccessRequestRejected AccessRequestStatus = "RECHAZADA"
)

// AccessRequest is an exporter's request for an account, reviewed by an administrator.
type AccessRequest struct {
	RequestID       int64               `json:"requestID"`
	FullName        string              `json:"fullName"`
	CorporateEmail  string              `json:"corporateEmail"`
	ExporterName    string              `json:"exporterName"`
	ExporterCode    string              `json:"exporterCode"`
	Position        *string             `json:"position,omitempty"`
	Phone           *string             `json:"phone,omitempty"`
	Status          AccessRequestStatus `json:"status"`
	RejectionReason *string             `json:"rejectionReason,omitempty"`
	RequestedAt     time.Time           `json:"requestedAt"`
	RespondedAt     *time.Time          `json:"respondedAt,omitempty"`
	RespondedBy     *string             `json:"respondedBy,omitempty"`
	CreatedUserID   *string             `json:"createdUserID,omitempty"`
}

// IsPending reports whether the request still awaits a decision.
func (r AccessRequest) IsPending() bool {
	return r.Status == AccessRequestPending
}

// AccessApproval is the outcome of approving a request. TemporaryPassword is
// the only copy of the new user's plaintext password.
type AccessApproval struct {
	Request           AccessRequest
	User              User
	TemporaryPassword string
}
