package handlers

import "github.com/gin-gonic/gin"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	UserHandler    *UserHandler
	AuthHandler    *AuthHandler
	TaskHandler    *TaskHandler
	GraphQLHandler *GraphQLHandler
	HealthHandler  *HealthHandler
}

// Middlewares - middleware, которые хэндлеры вешают на свои маршруты
type Middlewares struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	RateLimit    gin.HandlerFunc
	// Require возвращает проверку разрешения роли
	Require func(permission string) gin.HandlerFunc
}
