package models

import (
	"time"

	"gorm.io/datatypes"
)

// TaskResult хранит состояние и результат задачи из очереди.
type TaskResult struct {
	BaseModel
	TaskID   string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"task_id"`
	TaskName string         `gorm:"type:varchar(255);index;not null" json:"task_name"`
	Status   TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Args     datatypes.JSON `json:"args"`
	Result   datatypes.JSON `json:"result"`
	Error    string         `gorm:"type:text" json:"error,omitempty"`
	DateDone *time.Time     `json:"date_done"`
}
