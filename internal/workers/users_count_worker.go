package workers

import (
	"context"
	"time"

	"website_backend/internal/logger"
	"website_backend/internal/tasks"
)

type UsersCountWorker struct {
	dispatcher tasks.Dispatcher
	interval   time.Duration
}

func NewUsersCountWorker(dispatcher tasks.Dispatcher, interval time.Duration) *UsersCountWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &UsersCountWorker{dispatcher: dispatcher, interval: interval}
}

// Start периодически ставит get_users_count в очередь
func (w *UsersCountWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *UsersCountWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("users count worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *UsersCountWorker) tick(ctx context.Context) {
	id, err := w.dispatcher.Enqueue(ctx, tasks.TaskGetUsersCount, nil)
	if err != nil {
		logger.WorkerLog("users-count", "enqueue", err)
		return
	}
	logger.Debug("users count task enqueued", "task_id", id)
}
