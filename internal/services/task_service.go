package services

import (
	"context"
	"errors"

	"website_backend/internal/repositories"
	"website_backend/internal/services/dto"
	"website_backend/internal/tasks"
	"website_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TaskService interface {
	EnqueueUsersCount(ctx context.Context) (*dto.TaskEnqueuedResponse, error)
	Get(db *gorm.DB, taskID string) (*dto.TaskResultResponse, error)
}

type taskService struct {
	dispatcher tasks.Dispatcher
	results    repositories.TaskResultRepository
}

func NewTaskService(dispatcher tasks.Dispatcher, results repositories.TaskResultRepository) TaskService {
	return &taskService{dispatcher: dispatcher, results: results}
}

func (s *taskService) EnqueueUsersCount(ctx context.Context) (*dto.TaskEnqueuedResponse, error) {
	id, err := s.dispatcher.Enqueue(ctx, tasks.TaskGetUsersCount, nil)
	if err != nil {
		return nil, apperrors.ErrQueue(err)
	}
	return &dto.TaskEnqueuedResponse{TaskID: id}, nil
}

func (s *taskService) Get(db *gorm.DB, taskID string) (*dto.TaskResultResponse, error) {
	result, err := s.results.FindByTaskID(db, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskResultNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.ErrDatabase(err)
	}
	resp := dto.NewTaskResultResponse(result)
	return &resp, nil
}
