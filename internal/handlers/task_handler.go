package handlers

import (
	"net/http"

	"website_backend/internal/auth"
	"website_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		BaseHandler: base,
		taskService: taskService,
	}
}

func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup, mw *Middlewares) {
	tasks := rg.Group("/tasks", mw.Auth)
	{
		tasks.POST("/users-count", mw.Require(auth.PermTasksRun), h.EnqueueUsersCount)
		tasks.GET("/:id", mw.Require(auth.PermTasksRead), h.Get)
	}
}

// EnqueueUsersCount godoc
// @Summary Поставить в очередь подсчет пользователей
// @Tags tasks
// @Produce json
// @Success 202 {object} dto.TaskEnqueuedResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks/users-count [post]
func (h *TaskHandler) EnqueueUsersCount(c *gin.Context) {
	resp, err := h.taskService.EnqueueUsersCount(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// Get godoc
// @Summary Статус и результат задачи
// @Tags tasks
// @Produce json
// @Param id path string true "ID задачи"
// @Success 200 {object} dto.TaskResultResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	resp, err := h.taskService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
