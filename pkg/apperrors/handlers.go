package apperrors

import (
	"website_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError пишет AppError в ответ; прочие ошибки становятся 500.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
		if !h.Debug {
			appErr = appErr.WithDetails(nil)
			if id := logger.GetRequestID(c.Request.Context()); id != "" {
				appErr = appErr.WithDetails(map[string]string{"request_id": id})
			}
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// Debug включается в development/test режиме (см. app.SetupRouter).
var Debug = false

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: Debug}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
