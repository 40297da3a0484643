package handlers

import (
	"net/http"

	"website_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
}

// Health godoc
// @Summary Проверка живости сервиса и БД
// @Tags system
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 503 {object} dto.StatusResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
