package repositories

import (
	"errors"
	"time"

	"website_backend/internal/models"

	"gorm.io/gorm"
)

// ErrTaskResultNotFound возвращается, когда результат задачи не найден в БД
var ErrTaskResultNotFound = errors.New("task result not found")

// TaskResultRepository хранит состояние задач из очереди
type TaskResultRepository interface {
	// Create сохраняет запись (обычно в статусе PENDING)
	Create(db *gorm.DB, result *models.TaskResult) error

	// FindByTaskID находит результат по id задачи
	FindByTaskID(db *gorm.DB, taskID string) (*models.TaskResult, error)

	// Upsert создает запись или обновляет статус существующей
	Upsert(db *gorm.DB, result *models.TaskResult) error

	// DeleteDoneBefore удаляет завершенные задачи старше before
	DeleteDoneBefore(db *gorm.DB, before time.Time) (int64, error)
}

type taskResultRepository struct{}

func NewTaskResultRepository() TaskResultRepository {
	return &taskResultRepository{}
}

func (r *taskResultRepository) Create(db *gorm.DB, result *models.TaskResult) error {
	return db.Create(result).Error
}

func (r *taskResultRepository) FindByTaskID(db *gorm.DB, taskID string) (*models.TaskResult, error) {
	var result models.TaskResult
	if err := db.Where("task_id = ?", taskID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *taskResultRepository) Upsert(db *gorm.DB, result *models.TaskResult) error {
	existing, err := r.FindByTaskID(db, result.TaskID)
	if errors.Is(err, ErrTaskResultNotFound) {
		return r.Create(db, result)
	}
	if err != nil {
		return err
	}

	result.ID = existing.ID
	result.CreatedAt = existing.CreatedAt
	return db.Model(existing).Updates(map[string]interface{}{
		"status":    result.Status,
		"args":      result.Args,
		"result":    result.Result,
		"error":     result.Error,
		"date_done": result.DateDone,
	}).Error
}

func (r *taskResultRepository) DeleteDoneBefore(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Where("date_done IS NOT NULL AND date_done < ?", before).Delete(&models.TaskResult{})
	return res.RowsAffected, res.Error
}
