package dto

import "time"

// TriggerTaskDTO 手动触发后台任务
type TriggerTaskDTO struct {
	Type string `json:"type" binding:"required,oneof=daily_upload metrics_sync cleanup"`
}

// ScheduledTaskDTO 后台任务执行记录
type ScheduledTaskDTO struct {
	ID          uint64     `json:"id"`
	Type        string     `json:"type"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	CompletedAt *time.Time `json:"completedAt"`
}
