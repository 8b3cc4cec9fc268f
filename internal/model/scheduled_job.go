package model

import (
	"time"
)

// ScheduledJob 后台任务的执行记录，供运维界面查看
type ScheduledJob struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"size:32;not null;index" json:"type"`
	ScheduledAt time.Time  `gorm:"not null;index" json:"scheduledAt"`
	Status      string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	Error       string     `gorm:"size:512" json:"error"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (ScheduledJob) TableName() string {
	return "scheduled_jobs"
}
