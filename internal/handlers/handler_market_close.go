package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/dto"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// marketCloseHandler handles HTTP requests for the daily ICE close and BCH rate.
type marketCloseHandler struct {
	marketCloseService portssvc.MarketCloseSvcFacade
}

func newMarketCloseHandler(ms portssvc.MarketCloseSvcFacade) *marketCloseHandler {
	return &marketCloseHandler{marketCloseService: ms}
}

func registerMarketCloseRoutes(rg *gin.RouterGroup, marketCloseService portssvc.MarketCloseSvcFacade) {
	h := newMarketCloseHandler(marketCloseService)

	closes := rg.Group("/cierre_ny_bch")
	{
		closes.GET("/ultimo", h.getLatestMarketClose)
		closes.GET("/por_fecha/:fecha", h.getMarketCloseByDate)
		closes.POST("/", middleware.RequireRoles(domain.RoleAdmin), h.recordMarketClose)
		closes.GET("/", h.listMarketCloses)
	}
}

// getLatestMarketClose godoc
// @Summary Get the most recent market close
// @Tags market-closes
// @Produce json
// @Success 200 {object} dto.MarketCloseResponse
// @Failure 404 {object} dto.ErrorResponse "No close recorded yet"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cierre_ny_bch/ultimo [get]
func (h *marketCloseHandler) getLatestMarketClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mc, err := h.marketCloseService.GetLatestMarketClose(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve market close")
		return
	}
	c.JSON(http.StatusOK, dto.ToMarketCloseResponse(mc))
}

// getMarketCloseByDate godoc
// @Summary Get the market close for a date
// @Tags market-closes
// @Produce json
// @Param fecha path string true "Close date (YYYY-MM-DD)"
// @Success 200 {object} dto.MarketCloseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cierre_ny_bch/por_fecha/{fecha} [get]
func (h *marketCloseHandler) getMarketCloseByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raw := c.Param("fecha")
	date, err := domain.ParseCalendarDate(raw)
	if err != nil {
		respondError(c, logger, fmt.Errorf("%w: fecha must be YYYY-MM-DD", apperrors.ErrValidation), "")
		return
	}

	mc, err := h.marketCloseService.GetMarketCloseByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, logger.With(slog.String("close_date", raw)), err, "Failed to retrieve market close")
		return
	}
	c.JSON(http.StatusOK, dto.ToMarketCloseResponse(mc))
}

// recordMarketClose godoc
// @Summary Record the market close for a date
// @Description Inserts the close or replaces the existing one for the same date (administrators only).
// @Tags market-closes
// @Accept json
// @Produce json
// @Param close body dto.MarketCloseRequest true "Market close"
// @Success 201 {object} dto.MarketCloseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cierre_ny_bch/ [post]
func (h *marketCloseHandler) recordMarketClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarketCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	mc, err := req.ToDomain()
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, logger, apperrors.ErrUnauthorized, "")
		return
	}

	saved, err := h.marketCloseService.RecordMarketClose(c.Request.Context(), mc, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record market close")
		return
	}
	logger.Info("Market close recorded", slog.String("close_date", req.Date))
	c.JSON(http.StatusCreated, dto.ToMarketCloseResponse(saved))
}

// listMarketCloses godoc
// @Summary List market closes
// @Description Newest first.
// @Tags market-closes
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size, capped at 500; 0 returns an empty page" default(100)
// @Success 200 {array} dto.MarketCloseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cierre_ny_bch/ [get]
func (h *marketCloseHandler) listMarketCloses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMarketClosesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	closes, err := h.marketCloseService.ListMarketCloses(c.Request.Context(), params.Limit, params.Skip)
	if err != nil {
		respondError(c, logger, err, "Failed to list market closes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMarketCloseResponse(closes))
}
