// Package tasks - очередь фоновых задач: брокеры, реестр обработчиков,
// воркер и сами задачи приложения.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

const (
	TaskGetUsersCount     = "get_users_count"
	TaskSendPasswordEmail = "send_password_email"
)

var (
	ErrUnknownTask = errors.New("unknown task")
	ErrQueueClosed = errors.New("queue closed")
)

// Task - сообщение в очереди
type Task struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Args       json.RawMessage `json:"args,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// HandlerFunc выполняет задачу; результат сериализуется в JSON
type HandlerFunc func(ctx context.Context, db *gorm.DB, args json.RawMessage) (any, error)

// Dispatcher ставит задачу в очередь и возвращает её id
type Dispatcher interface {
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// Registry - соответствие имени задачи и обработчика
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

func (r *Registry) Register(name string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[name]; dup {
		panic(fmt.Sprintf("tasks: handler %q registered twice", name))
	}
	r.handlers[name] = h
}

func (r *Registry) Lookup(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func marshalArgs(args any) (json.RawMessage, error) {
	if args == nil {
		return nil, nil
	}
	if raw, ok := args.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal task args: %w", err)
	}
	return b, nil
}
