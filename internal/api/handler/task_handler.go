package handler

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/pkg/response"
	"SimPulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskSvc service.TaskService
}

func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskSvc: taskSvc,
	}
}

// TriggerTask 手动触发后台任务
func (h *TaskHandler) TriggerTask(c *gin.Context) {
	var req dto.TriggerTaskDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.taskSvc.TriggerTask(c.Request.Context(), req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// GetTaskStatus 获取最近任务执行记录
func (h *TaskHandler) GetTaskStatus(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tasks, err := h.taskSvc.GetTaskStatus(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}
