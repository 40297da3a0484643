package handlers

import (
	"net/http"

	"website_backend/internal/auth"
	"website_backend/internal/services"
	"website_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes регистрирует /users/profiles/...
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	profiles := rg.Group("/users/profiles")
	{
		profiles.POST("/", h.Create)
		profiles.GET("/", mw.Auth, mw.Require(auth.PermUsersList), h.List)

		profiles.POST("/exists/", h.Exists)
		profiles.PUT("/change_password/", mw.Auth, h.ChangePassword)
		profiles.POST("/reset_password/", mw.RateLimit, h.ResetPassword)
		profiles.POST("/password_token/", mw.RateLimit, h.PasswordToken)

		self := profiles.Group("/:id", mw.Auth, mw.Require(auth.PermProfileSelf))
		self.GET("/", h.Retrieve)
		self.PUT("/", h.Update)
		self.PATCH("/", h.PartialUpdate)
		self.DELETE("/", h.Destroy)
	}
}

// Create godoc
// @Summary Регистрация пользователя
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "Данные пользователя"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/v1/users/profiles/ [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// List godoc
// @Summary Список пользователей (staff)
// @Tags profiles
// @Produce json
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/profiles/ [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.userService.List(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Retrieve godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль вызывающего пользователя; id в пути не используется
// @Tags profiles
// @Produce json
// @Param id path string true "ID профиля"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/profiles/{id}/ [get]
func (h *UserHandler) Retrieve(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update godoc
// @Summary Обновить профиль текущего пользователя
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "ID профиля"
// @Param body body dto.UpdateUserRequest true "Поля профиля"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/profiles/{id}/ [put]
func (h *UserHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdate godoc
// @Summary Частично обновить профиль текущего пользователя
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "ID профиля"
// @Param body body dto.UpdateUserRequest true "Поля профиля"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /api/v1/users/profiles/{id}/ [patch]
func (h *UserHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *UserHandler) update(c *gin.Context, partial bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Update(h.GetDB(c), userID, &req, partial)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Destroy godoc
// @Summary Деактивировать текущего пользователя
// @Tags profiles
// @Param id path string true "ID профиля"
// @Success 204
// @Security BearerAuth
// @Router /api/v1/users/profiles/{id}/ [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Exists godoc
// @Summary Проверить, занят ли email
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body dto.EmailExistsRequest true "Email"
// @Success 200 {object} dto.EmailExistsResponse
// @Router /api/v1/users/profiles/exists/ [post]
func (h *UserHandler) Exists(c *gin.Context) {
	var req dto.EmailExistsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	exists, err := h.userService.Exists(h.GetDB(c), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmailExistsResponse{Status: exists})
}

// ChangePassword godoc
// @Summary Сменить пароль
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Новый пароль"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/profiles/change_password/ [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// ResetPassword godoc
// @Summary Запросить письмо для входа без пароля
// @Description Ответ не зависит от того, существует ли аккаунт
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body dto.PasswordResetRequest true "Email"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/users/profiles/reset_password/ [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if _, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// PasswordToken godoc
// @Summary Войти по одноразовому токену из письма
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body dto.PasswordTokenRequest true "Токен"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/users/profiles/password_token/ [post]
func (h *UserHandler) PasswordToken(c *gin.Context) {
	var req dto.PasswordTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginWithOneTimeToken(h.GetDB(c), req.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
