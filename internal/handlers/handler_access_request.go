package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/dto"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessRequestHandler handles exporter access requests and their review.
type accessRequestHandler struct {
	accessRequestService portssvc.AccessRequestSvcFacade
}

func newAccessRequestHandler(as portssvc.AccessRequestSvcFacade) *accessRequestHandler {
	return &accessRequestHandler{accessRequestService: as}
}

// registerAccessRequestSubmitRoutes registers the public submission route.
func registerAccessRequestSubmitRoutes(r *gin.Engine, accessRequestService portssvc.AccessRequestSvcFacade, limit gin.HandlerFunc) {
	h := newAccessRequestHandler(accessRequestService)
	r.POST("/registro/solicitar_acceso", limit, h.submitAccessRequest)
}

// registerAccessRequestAdminRoutes registers the review routes. admin must
// already be restricted to administrators.
func registerAccessRequestAdminRoutes(admin *gin.RouterGroup, accessRequestService portssvc.AccessRequestSvcFacade) {
	h := newAccessRequestHandler(accessRequestService)

	requests := admin.Group("/solicitudes")
	{
		requests.GET("/pendientes", h.listPendingAccessRequests)
		requests.GET("/:id", h.getAccessRequest)
		requests.POST("/:id/aprobar", h.approveAccessRequest)
		requests.POST("/:id/rechazar", h.rejectAccessRequest)
	}
}

func parseRequestID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", apperrors.ErrValidation)
	}
	return id, nil
}

// submitAccessRequest godoc
// @Summary Request access for an exporter
// @Description Stores a pending request to be reviewed by IHCAFE administrators.
// @Tags access-requests
// @Accept json
// @Produce json
// @Param request body dto.AccessRequestCreateRequest true "Requester details"
// @Success 201 {object} dto.AccessRequestSubmittedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already requested or registered"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /registro/solicitar_acceso [post]
func (h *accessRequestHandler) submitAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccessRequestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	saved, err := h.accessRequestService.SubmitAccessRequest(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, logger, err, "Failed to submit access request")
		return
	}
	logger.Info("Access request submitted", slog.Int64("request_id", saved.RequestID))
	c.JSON(http.StatusCreated, dto.AccessRequestSubmittedResponse{
		Message:   dto.MsgAccessRequestSubmitted,
		RequestID: saved.RequestID,
	})
}

// listPendingAccessRequests godoc
// @Summary List pending access requests
// @Description Oldest first (administrators only).
// @Tags access-requests
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size, capped at 500; 0 returns an empty page" default(100)
// @Success 200 {array} dto.AccessRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/solicitudes/pendientes [get]
func (h *accessRequestHandler) listPendingAccessRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccessRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	reqs, err := h.accessRequestService.ListPendingAccessRequests(c.Request.Context(), params.Limit, params.Skip)
	if err != nil {
		respondError(c, logger, err, "Failed to list access requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccessRequestResponse(reqs))
}

// getAccessRequest godoc
// @Summary Get an access request
// @Tags access-requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/solicitudes/{id} [get]
func (h *accessRequestHandler) getAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parseRequestID(c)
	if err != nil {
		respondError(c, logger, err, "")
		return
	}

	req, err := h.accessRequestService.GetAccessRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve access request")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessRequestResponse(req))
}

// approveAccessRequest godoc
// @Summary Approve an access request
// @Description Creates the exporter editor account and returns its temporary password once.
// @Tags access-requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 201 {object} dto.AccessApprovalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Request missing or no longer pending"
// @Failure 409 {object} dto.ErrorResponse "A user with that email already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/solicitudes/{id}/aprobar [post]
func (h *accessRequestHandler) approveAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parseRequestID(c)
	if err != nil {
		respondError(c, logger, err, "")
		return
	}
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, logger, apperrors.ErrUnauthorized, "")
		return
	}

	approval, err := h.accessRequestService.ApproveAccessRequest(c.Request.Context(), id, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve access request")
		return
	}
	logger.Info("Access request approved",
		slog.Int64("request_id", id),
		slog.String("created_user_id", approval.User.UserID))
	c.JSON(http.StatusCreated, dto.ToAccessApprovalResponse(approval))
}

// rejectAccessRequest godoc
// @Summary Reject an access request
// @Tags access-requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param reason body dto.RejectAccessRequestRequest true "Rejection reason"
// @Success 200 {object} dto.AccessRejectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Request missing or no longer pending"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/solicitudes/{id}/rechazar [post]
func (h *accessRequestHandler) rejectAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parseRequestID(c)
	if err != nil {
		respondError(c, logger, err, "")
		return
	}
	var req dto.RejectAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, logger, apperrors.ErrUnauthorized, "")
		return
	}

	rejected, err := h.accessRequestService.RejectAccessRequest(c.Request.Context(), id, req.Reason, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject access request")
		return
	}
	logger.Info("Access request rejected", slog.Int64("request_id", id))
	c.JSON(http.StatusOK, dto.AccessRejectionResponse{
		Message: dto.MsgAccessRequestRejected,
		Request: dto.ToAccessRequestResponse(rejected),
	})
}
