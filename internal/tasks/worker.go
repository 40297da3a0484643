package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"website_backend/internal/logger"
	"website_backend/internal/models"
	"website_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Worker выполняет задачи и сохраняет их результат в task_results
type Worker struct {
	db       *gorm.DB
	broker   Broker
	registry *Registry
	results  repositories.TaskResultRepository
	now      func() time.Time
}

func NewWorker(db *gorm.DB, broker Broker, registry *Registry) *Worker {
	return &Worker{
		db:       db,
		broker:   broker,
		registry: registry,
		results:  repositories.NewTaskResultRepository(),
		now:      time.Now,
	}
}

// Run читает задачи из брокера до отмены ctx
func (w *Worker) Run(ctx context.Context) error {
	logger.Info("task worker started", "tasks", w.registry.Names())
	err := w.broker.Consume(ctx, w.Handle)
	logger.Info("task worker stopped")
	return err
}

// Handle выполняет одну задачу. Неизвестное имя записывается как FAILURE.
func (w *Worker) Handle(ctx context.Context, task Task) error {
	db := w.db.WithContext(ctx)
	start := w.now()

	record := &models.TaskResult{
		TaskID:   task.ID,
		TaskName: task.Name,
		Status:   models.TaskStatusStarted,
		Args:     datatypes.JSON(task.Args),
	}
	if err := w.results.Upsert(db, record); err != nil {
		logger.WorkerLog("task-worker", "record started", err)
	}

	result, runErr := w.run(ctx, db, task)

	done := w.now()
	record.DateDone = &done
	if runErr != nil {
		record.Status = models.TaskStatusFailure
		record.Error = runErr.Error()
		record.Result = nil
	} else {
		record.Status = models.TaskStatusSuccess
		encoded, err := json.Marshal(result)
		if err != nil {
			record.Status = models.TaskStatusFailure
			record.Error = fmt.Sprintf("encode result: %v", err)
			runErr = err
		} else {
			record.Result = datatypes.JSON(encoded)
		}
	}
	if err := w.results.Upsert(db, record); err != nil {
		logger.WorkerLog("task-worker", "record result", err)
	}

	logger.TaskLog(task.Name, task.ID, done.Sub(start), runErr)
	return runErr
}

func (w *Worker) run(ctx context.Context, db *gorm.DB, task Task) (result any, err error) {
	handler, ok := w.registry.Lookup(task.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, task.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return handler(ctx, db, task.Args)
}

// Enqueue выполняет задачу сразу, в текущей горутине (eager-режим).
// Ошибка задачи не возвращается вызывающему, она остается в task_results.
func (w *Worker) Enqueue(ctx context.Context, name string, args any) (string, error) {
	raw, err := marshalArgs(args)
	if err != nil {
		return "", err
	}
	task := Task{ID: uuid.NewString(), Name: name, Args: raw, EnqueuedAt: w.now().UTC()}
	_ = w.Handle(ctx, task)
	return task.ID, nil
}
