package routes

import (
	"website_backend/internal/handlers"
	"website_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все маршруты приложения
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	mw *handlers.Middlewares,
) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	appHandlers.AuthHandler.RegisterRoutes(ginRouter, mw)
	appHandlers.GraphQLHandler.RegisterRoutes(ginRouter, mw)

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.UserHandler.RegisterRoutes(api, mw)
		appHandlers.TaskHandler.RegisterRoutes(api, mw)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("Routes registered", "count", len(ginRouter.Routes()))
}
