package models

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusStarted TaskStatus = "STARTED"
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailure TaskStatus = "FAILURE"
)

// IsReady - задача завершилась (успешно или нет).
func (s TaskStatus) IsReady() bool {
	return s == TaskStatusSuccess || s == TaskStatusFailure
}
