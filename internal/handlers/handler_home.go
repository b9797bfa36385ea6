package handlers

import (
	"net/http"

	"github.com/cafehnd/cafehnd_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Welcome message
// @Tags root
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bienvenido a CaféHND Digital."})
}

// getHealth godoc
// @Summary Liveness probe
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
