package mapping

import (
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/models"
)

// ToModelAccessRequest converts a domain AccessRequest to a model AccessRequest
func ToModelAccessRequest(d domain.AccessRequest) models.AccessRequest {
	return models.AccessRequest{
		RequestID:       d.RequestID,
		FullName:        d.FullName,
		CorporateEmail:  d.CorporateEmail,
		ExporterName:    d.ExporterName,
		ExporterCode:    d.ExporterCode,
		Position:        toNullString(d.Position),
		Phone:           toNullString(d.Phone),
		Status:          string(d.Status),
		RejectionReason: toNullString(d.RejectionReason),
		RequestedAt:     d.RequestedAt,
		RespondedAt:     toNullTime(d.RespondedAt),
		RespondedBy:     toNullString(d.RespondedBy),
		CreatedUserID:   toNullString(d.CreatedUserID),
	}
}

// ToDomainAccessRequest converts a model AccessRequest to a domain AccessRequest
func ToDomainAccessRequest(m models.AccessRequest) domain.AccessRequest {
	return domain.AccessRequest{
		RequestID:       m.RequestID,
		FullName:        m.FullName,
		CorporateEmail:  m.CorporateEmail,
		ExporterName:    m.ExporterName,
		ExporterCode:    m.ExporterCode,
		Position:        fromNullString(m.Position),
		Phone:           fromNullString(m.Phone),
		Status:          domain.AccessRequestStatus(m.Status),
		RejectionReason: fromNullString(m.RejectionReason),
		RequestedAt:     m.RequestedAt,
		RespondedAt:     fromNullTime(m.RespondedAt),
		RespondedBy:     fromNullString(m.RespondedBy),
		CreatedUserID:   fromNullString(m.CreatedUserID),
	}
}

// ToDomainAccessRequestSlice converts a slice of model AccessRequests
func ToDomainAccessRequestSlice(ms []models.AccessRequest) []domain.AccessRequest {
	ds := make([]domain.AccessRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccessRequest(m)
	}
	return ds
}
