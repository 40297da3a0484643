package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"website_backend/database"
	"website_backend/internal/auth"
	"website_backend/internal/config"
	"website_backend/internal/graphql"
	"website_backend/internal/handlers"
	"website_backend/internal/logger"
	"website_backend/internal/middleware"
	"website_backend/internal/models"
	"website_backend/internal/routes"
	"website_backend/internal/services"
	"website_backend/internal/validator"
	"website_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// без админа сервер не стартует
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	infra, err := NewInfra(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to initialize infrastructure", "error", err)
	}
	defer infra.Close()

	// очередь в памяти обслуживается воркером внутри web-процесса
	if cfg.Queue.Broker != "amqp" && !cfg.Queue.Eager {
		go func() {
			if err := infra.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("In-process task worker stopped", "error", err)
			}
		}()
	}

	ginRouter, err := SetupRouter(cfg, gormDB, infra)
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, gormDB, cfg.Database.Driver); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Database migrated")
	}
	return gormDB, nil
}

// SetupRouter собирает сервисы, хэндлеры и маршруты
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, infra *Infra) (*gin.Engine, error) {
	apperrors.Debug = cfg.IsDevelopment()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Сервисы
	serviceContainer := services.NewServiceContainer(infra.Tokens, infra.Signer, infra.Dispatcher)

	// 2. Хэндлеры
	customValidator := validator.New()
	schema, err := graphql.NewSchema(serviceContainer, customValidator)
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}
	appHandlers := initializeHandlers(serviceContainer, customValidator, schema)

	// 3. Gin и middleware
	ginRouter := initializeGinRouter(cfg, gormDB)
	mw := &handlers.Middlewares{
		Auth:         middleware.AuthMiddleware(serviceContainer.AuthService),
		OptionalAuth: middleware.OptionalAuthMiddleware(serviceContainer.AuthService),
		RateLimit:    middleware.RateLimitMiddleware(cfg.RateLimit, infra.Redis),
		Require:      middleware.RequirePermission,
	}

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, mw)

	return ginRouter, nil
}

func initializeHandlers(sc *services.ServiceContainer, v *validator.Validator, schema gql.Schema) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(v)

	return &handlers.AppHandlers{
		UserHandler:    handlers.NewUserHandler(baseHandler, sc.UserService, sc.AuthService),
		AuthHandler:    handlers.NewAuthHandler(baseHandler, sc.AuthService),
		TaskHandler:    handlers.NewTaskHandler(baseHandler, sc.TaskService),
		GraphQLHandler: handlers.NewGraphQLHandler(baseHandler, schema),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSAllowOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает суперпользователя из FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := models.NormalizeEmail(cfg.FirstAdminEmail)
	adminPassword := cfg.FirstAdminPassword

	if !strings.Contains(adminEmail, "@") || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

		hashedPassword, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Email:       adminEmail,
			Username:    adminEmail[:strings.Index(adminEmail, "@")],
			Password:    hashedPassword,
			IsStaff:     true,
			IsSuperuser: true,
			IsActive:    true,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user in database: %w", err)
		}

		logger.Info("Successfully created first admin user", "email", adminEmail)
		return nil
	})
}
