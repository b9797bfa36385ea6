package dto

import (
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
)

const (
	MsgAccessRequestSubmitted = "Solicitud de acceso enviada exitosamente. Será revisada por el equipo de IHCAFE."
	MsgAccessRequestRejected  = "Solicitud rechazada."
	MsgAccessRequestApproved  = "Solicitud aprobada. Usuario creado."
)

// AccessRequestCreateRequest is an exporter representative asking for an account.
type AccessRequestCreateRequest struct {
	FullName       string  `json:"nombre_completo" binding:"required,max=150"`
	CorporateEmail string  `json:"email_corporativo" binding:"required,email,max=254"`
	ExporterName   string  `json:"nombre_exportadora" binding:"required,max=150"`
	ExporterCode   string  `json:"clave_exportador" binding:"required,exportercode"`
	Position       *string `json:"cargo_relacion,omitempty" binding:"omitempty,max=100"`
	Phone          *string `json:"telefono_contacto,omitempty" binding:"omitempty,max=30"`
}

// ToDomain converts the request into a domain.AccessRequest.
func (r AccessRequestCreateRequest) ToDomain() domain.AccessRequest {
	return domain.AccessRequest{
		FullName:       r.FullName,
		CorporateEmail: r.CorporateEmail,
		ExporterName:   r.ExporterName,
		ExporterCode:   r.ExporterCode,
		Position:       r.Position,
		Phone:          r.Phone,
	}
}

// RejectAccessRequestRequest carries the reason shown to the requester.
type RejectAccessRequestRequest struct {
	Reason string `json:"motivo" binding:"required,max=500"`
}

// ListAccessRequestsParams defines query parameters for listing requests.
type ListAccessRequestsParams struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

// AccessRequestSubmittedResponse confirms a stored request.
type AccessRequestSubmittedResponse struct {
	Message   string `json:"mensaje"`
	RequestID int64  `json:"id_solicitud"`
}

// AccessRequestResponse is a request as reviewed by administrators.
type AccessRequestResponse struct {
	RequestID       int64      `json:"id_solicitud"`
	FullName        string     `json:"nombre_completo"`
	Email           string     `json:"email"`
	ExporterName    string     `json:"nombre_organizacion"`
	ExporterCode    string     `json:"clave_exportador"`
	Position        *string    `json:"cargo_relacion,omitempty"`
	Phone           *string    `json:"telefono_contacto,omitempty"`
	Status          string     `json:"estado"`
	RejectionReason *string    `json:"motivo_rechazo,omitempty"`
	RequestedAt     time.Time  `json:"fecha_solicitud"`
	RespondedAt     *time.Time `json:"fecha_respuesta,omitempty"`
}

// ToAccessRequestResponse converts a domain.AccessRequest to AccessRequestResponse DTO
func ToAccessRequestResponse(r *domain.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		RequestID:       r.RequestID,
		FullName:        r.FullName,
		Email:           r.CorporateEmail,
		ExporterName:    r.ExporterName,
		ExporterCode:    r.ExporterCode,
		Position:        r.Position,
		Phone:           r.Phone,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		RequestedAt:     r.RequestedAt,
		RespondedAt:     r.RespondedAt,
	}
}

// ToListAccessRequestResponse converts a slice of domain.AccessRequest to AccessRequestResponse DTOs
func ToListAccessRequestResponse(reqs []domain.AccessRequest) []AccessRequestResponse {
	res := make([]AccessRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToAccessRequestResponse(&reqs[i])
	}
	return res
}

// AccessApprovalResponse carries the new user's temporary password. It is
// the only time the plaintext is disclosed.
type AccessApprovalResponse struct {
	Message           string `json:"mensaje"`
	CreatedUserID     string `json:"id_usuario_creado"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"contraseña_temporal"`
}

// ToAccessApprovalResponse converts a domain.AccessApproval to AccessApprovalResponse DTO
func ToAccessApprovalResponse(a *domain.AccessApproval) AccessApprovalResponse {
	return AccessApprovalResponse{
		Message:           MsgAccessRequestApproved,
		CreatedUserID:     a.User.UserID,
		Email:             a.User.Email,
		TemporaryPassword: a.TemporaryPassword,
	}
}

// AccessRejectionResponse confirms a rejected request.
type AccessRejectionResponse struct {
	Message string                `json:"mensaje"`
	Request AccessRequestResponse `json:"solicitud"`
}
