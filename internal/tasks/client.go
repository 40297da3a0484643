package tasks

import (
	"context"
	"fmt"
	"time"

	"website_backend/internal/models"
	"website_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client публикует задачи в брокер и заводит для них запись PENDING
type Client struct {
	db      *gorm.DB
	broker  Broker
	results repositories.TaskResultRepository
}

func NewClient(db *gorm.DB, broker Broker) *Client {
	return &Client{
		db:      db,
		broker:  broker,
		results: repositories.NewTaskResultRepository(),
	}
}

func (c *Client) Enqueue(ctx context.Context, name string, args any) (string, error) {
	raw, err := marshalArgs(args)
	if err != nil {
		return "", err
	}

	task := Task{
		ID:         uuid.NewString(),
		Name:       name,
		Args:       raw,
		EnqueuedAt: time.Now().UTC(),
	}

	record := &models.TaskResult{
		TaskID:   task.ID,
		TaskName: name,
		Status:   models.TaskStatusPending,
		Args:     datatypes.JSON(raw),
	}
	if err := c.results.Create(c.db.WithContext(ctx), record); err != nil {
		return "", fmt.Errorf("record pending task: %w", err)
	}

	if err := c.broker.Publish(ctx, task); err != nil {
		return "", fmt.Errorf("publish task %s: %w", name, err)
	}
	return task.ID, nil
}
