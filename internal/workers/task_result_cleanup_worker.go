package workers

import (
	"context"
	"time"

	"website_backend/internal/logger"
	"website_backend/internal/repositories"

	"gorm.io/gorm"
)

type TaskResultCleanupWorker struct {
	db      *gorm.DB
	ttl     time.Duration
	repo    repositories.TaskResultRepository
	every   time.Duration
	nowFunc func() time.Time
}

func NewTaskResultCleanupWorker(db *gorm.DB, ttl time.Duration) *TaskResultCleanupWorker {
	return &TaskResultCleanupWorker{
		db:      db,
		ttl:     ttl,
		repo:    repositories.NewTaskResultRepository(),
		every:   6 * time.Hour,
		nowFunc: time.Now,
	}
}

// Start удаляет завершенные задачи старше ttl каждые 6 часов
func (w *TaskResultCleanupWorker) Start(ctx context.Context) {
	if w.ttl <= 0 {
		return
	}
	go w.loop(ctx)
}

func (w *TaskResultCleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("task result cleanup worker stopped")
			return
		case <-ticker.C:
			w.Cleanup(ctx)
		}
	}
}

// Cleanup возвращает число удаленных записей
func (w *TaskResultCleanupWorker) Cleanup(ctx context.Context) int64 {
	deleted, err := w.repo.DeleteDoneBefore(w.db.WithContext(ctx), w.nowFunc().Add(-w.ttl))
	if err != nil {
		logger.WorkerLog("task-result-cleanup", "delete", err)
		return 0
	}
	if deleted > 0 {
		logger.Info("expired task results deleted", "count", deleted)
	}
	return deleted
}
