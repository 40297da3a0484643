package database

import (
	"context"
	"database/sql"
	"fmt"

	"website_backend/database/migrations"
	"website_backend/internal/logger"
	"website_backend/internal/models"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// gooseUpContext - точка подмены goose.UpContext в тестах.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate применяет схему: goose-миграции для postgres, AutoMigrate для остальных диалектов.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	if driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
		}
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("goose dialect: %w", err)
		}
		if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		logger.Info("goose migrations applied")
		return nil
	}

	if err := AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("AutoMigrate completed", "driver", driver)
	return nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Link{},
		&models.TaskResult{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
