package graphql

import (
	"context"

	"website_backend/internal/logger"
	"website_backend/pkg/apperrors"
)

// resolverError - ошибка резолвера с кодом в extensions
type resolverError struct {
	message    string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Extensions() map[string]interface{} { return e.extensions }

// publicError оставляет клиенту текст AppError; внутренние ошибки скрываются,
// а клиент получает request_id для поиска в логах
func publicError(ctx context.Context, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "graphql resolver failed", err)
		ext := map[string]interface{}{"code": string(apperrors.CodeInternalError)}
		if id := logger.GetRequestID(ctx); id != "" {
			ext["request_id"] = id
		}
		return &resolverError{message: "Internal server error", extensions: ext}
	}

	ext := map[string]interface{}{"code": string(appErr.Code)}
	if appErr.Details != nil {
		ext["details"] = appErr.Details
	}
	return &resolverError{message: appErr.Message, extensions: ext}
}
