package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому хранится *gorm.DB в context
const DBContextKey = contextKey("db")

// ClaimsContextKey - ключ для *auth.Claims аутентифицированного запроса
const ClaimsContextKey = contextKey("claims")

// Ключи gin.Context, которые выставляет AuthMiddleware.
const (
	UserIDKey  = "userID"
	IsStaffKey = "isStaff"
)
