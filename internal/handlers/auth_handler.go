package handlers

import (
	"net/http"

	"website_backend/internal/services"
	"website_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует /login/ в корне сервера
func (h *AuthHandler) RegisterRoutes(r gin.IRoutes, mw *Middlewares) {
	r.POST("/login/", mw.RateLimit, h.Login)
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
