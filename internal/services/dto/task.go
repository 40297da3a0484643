package dto

import (
	"encoding/json"
	"time"

	"website_backend/internal/models"
)

type TaskEnqueuedResponse struct {
	TaskID string `json:"task_id"`
}

type TaskResultResponse struct {
	TaskID   string            `json:"task_id"`
	TaskName string            `json:"task_name"`
	Status   models.TaskStatus `json:"status"`
	Ready    bool              `json:"ready"`
	Result   json.RawMessage   `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
	DateDone *time.Time        `json:"date_done"`
}

func NewTaskResultResponse(r *models.TaskResult) TaskResultResponse {
	resp := TaskResultResponse{
		TaskID:   r.TaskID,
		TaskName: r.TaskName,
		Status:   r.Status,
		Ready:    r.Status.IsReady(),
		Error:    r.Error,
		DateDone: r.DateDone,
	}
	if len(r.Result) > 0 {
		resp.Result = json.RawMessage(r.Result)
	}
	return resp
}
