package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/dto"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// purchaseHandler handles HTTP requests for the national purchase ledger.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers the ledger routes. rg must already require authentication.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/registro_compras_nac")
	{
		purchases.GET("/proximo_reg_compa", h.previewNextReportNumber)
		purchases.GET("/por_fecha", h.listPurchasesByDate)
		purchases.GET("/exportar", h.exportPurchases)
		purchases.POST("/calcular_detalle_pago", h.calculatePayDetail)
		purchases.POST("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleExporterEditor), h.registerPurchase)
		purchases.GET("/", h.listPurchases)
		purchases.GET("/:id", h.getPurchase)
	}
}

// previewNextReportNumber godoc
// @Summary Preview the next report number
// @Description Returns the report number the next submission for the exporter would probably receive. Nothing is reserved.
// @Tags purchases
// @Produce json
// @Param exp_qic query string true "Exporter code"
// @Success 200 {object} dto.NextReportNumberResponse
// @Failure 400 {object} dto.ErrorResponse "Missing exporter code"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/proximo_reg_compa [get]
func (h *purchaseHandler) previewNextReportNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Query("exp_qic")
	if code == "" {
		respondError(c, logger, fmt.Errorf("%w: exp_qic is required", apperrors.ErrValidation), "")
		return
	}

	next, err := h.purchaseService.PreviewNextReportNumber(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to compute next report number")
		return
	}
	c.JSON(http.StatusOK, dto.NextReportNumberResponse{NextReportNumber: next})
}

// listPurchasesByDate godoc
// @Summary List one exporter's rows for a date
// @Tags purchases
// @Produce json
// @Param fecha query string true "Purchase date (YYYY-MM-DD)"
// @Param exp_qic query string true "Exporter code"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No rows for that date"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/por_fecha [get]
func (h *purchaseHandler) listPurchasesByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PurchasesByDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	date, err := domain.ParseCalendarDate(params.Date)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	entries, err := h.purchaseService.ListPurchasesByDate(c.Request.Context(), date, params.ExporterCode)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve purchases")
		return
	}
	if len(entries) == 0 {
		respondError(c, logger, fmt.Errorf("%w: no purchases for %s on %s", apperrors.ErrNotFound, params.ExporterCode, params.Date), "")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// calculatePayDetail godoc
// @Summary Preview the payment for a submission
// @Description Computes total sacks x price per sack x exchange rate for the purchase date without writing anything.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase event"
// @Success 200 {object} dto.PayDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or no exchange rate for the date"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/calcular_detalle_pago [post]
func (h *purchaseHandler) calculatePayDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	sub, err := req.ToDomain()
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	detail, err := h.purchaseService.CalculatePayDetail(c.Request.Context(), sub.TotalSacks(), sub.PurchaseDate)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate pay detail")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayDetailResponse(detail))
}

// registerPurchase godoc
// @Summary Register a purchase
// @Description Writes one ledger row per coffee class with a non-zero amount, all under a newly allocated report number.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Purchase event"
// @Success 201 {object} dto.PurchaseRegistrationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, no exchange rate or no valid data"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Exporter code does not belong to the caller"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/ [post]
func (h *purchaseHandler) registerPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	sub, err := req.ToDomain()
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		respondError(c, logger, apperrors.ErrUnauthorized, "")
		return
	}

	registration, err := h.purchaseService.RegisterPurchase(c.Request.Context(), sub, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to register purchase")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseRegistrationResponse(registration))
}

// listPurchases godoc
// @Summary List ledger rows
// @Description Newest purchase date first.
// @Tags purchases
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size, capped at 500; 0 returns an empty page" default(100)
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/ [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	entries, err := h.purchaseService.ListPurchases(c.Request.Context(), params.Limit, params.Skip)
	if err != nil {
		respondError(c, logger, err, "Failed to list purchases")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// getPurchase godoc
// @Summary Get a ledger row
// @Tags purchases
// @Produce json
// @Param id path int true "Ledger row ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/{id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, logger, fmt.Errorf("%w: id must be an integer", apperrors.ErrValidation), "")
		return
	}

	entry, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger.With(slog.Int64("entry_id", id)), err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// exportPurchases godoc
// @Summary Export ledger rows as a spreadsheet
// @Tags purchases
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param desde query string true "First purchase date (YYYY-MM-DD)"
// @Param hasta query string true "Last purchase date (YYYY-MM-DD)"
// @Param exp_qic query string false "Exporter code"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /registro_compras_nac/exportar [get]
func (h *purchaseHandler) exportPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ExportPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	filter, err := params.ToDomain()
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	workbook, err := h.purchaseService.ExportPurchases(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to export purchases")
		return
	}
	filename := fmt.Sprintf("compras_%s_%s.xlsx", params.From, params.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
