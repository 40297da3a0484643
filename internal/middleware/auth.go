package middleware

import (
	"strconv"
	"strings"

	"website_backend/internal/auth"
	"website_backend/internal/logger"
	"website_backend/pkg/apperrors"
	"website_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator проверяет access-токен и активность пользователя
type Authenticator interface {
	Authenticate(db *gorm.DB, token string) (*auth.Claims, error)
}

// Допустимые схемы заголовка Authorization
var authSchemes = []string{"JWT ", "Bearer "}

func extractToken(header string) (string, bool) {
	for _, scheme := range authSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):]), true
		}
	}
	return "", false
}

// authenticate возвращает (nil, nil) для запроса без заголовка
func authenticate(c *gin.Context, a Authenticator) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}
	token, ok := extractToken(header)
	if !ok || token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	db, _ := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	return a.Authenticate(db, token)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.ClaimsContextKey), claims)
	c.Set(contextkeys.UserIDKey, claims.UserID)
	c.Set(contextkeys.IsStaffKey, claims.IsStaff || claims.IsSuperuser)

	ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10))
	c.Request = c.Request.WithContext(ctx)
}

// AuthMiddleware - запрос без валидного токена получает 401
func AuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, a)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if claims == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication credentials were not provided."))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware пропускает анонимов, но отклоняет неверный токен
func OptionalAuthMiddleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, a)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequirePermission - 403, если у роли нет разрешения. Ставится после AuthMiddleware.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication credentials were not provided."))
			return
		}
		if !auth.HasPermission(claims.Role(), permission) {
			logger.CtxWarn(c.Request.Context(), "permission denied",
				"permission", permission,
				"role", claims.Role(),
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetClaims возвращает claims аутентифицированного запроса или nil
func GetClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(string(contextkeys.ClaimsContextKey))
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// GetUserID возвращает id пользователя или 0
func GetUserID(c *gin.Context) uint {
	v, ok := c.Get(contextkeys.UserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
