package tasks

import (
	"context"
	"sync"

	"website_backend/internal/logger"
)

// Broker доставляет задачи от клиента к воркеру
type Broker interface {
	Publish(ctx context.Context, task Task) error

	// Consume блокируется до отмены ctx; ошибка handler'а отклоняет сообщение
	Consume(ctx context.Context, handler func(ctx context.Context, task Task) error) error

	Close() error
}

// MemoryBroker - очередь в памяти для запуска в одном процессе
type MemoryBroker struct {
	queue     chan Task
	closeOnce sync.Once
	done      chan struct{}
}

func NewMemoryBroker(size int) *MemoryBroker {
	if size <= 0 {
		size = 1024
	}
	return &MemoryBroker{
		queue: make(chan Task, size),
		done:  make(chan struct{}),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, task Task) error {
	select {
	case <-b.done:
		return ErrQueueClosed
	default:
	}

	select {
	case b.queue <- task:
		return nil
	case <-b.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryBroker) Consume(ctx context.Context, handler func(ctx context.Context, task Task) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.done:
			return ErrQueueClosed
		case task := <-b.queue:
			if err := handler(ctx, task); err != nil {
				logger.Warn("task rejected", "task", task.Name, "task_id", task.ID, "error", err)
			}
		}
	}
}

// Len - число задач, ожидающих обработки
func (b *MemoryBroker) Len() int {
	return len(b.queue)
}

func (b *MemoryBroker) Close() error {
	b.closeOnce.Do(func() { close(b.done) })
	return nil
}
