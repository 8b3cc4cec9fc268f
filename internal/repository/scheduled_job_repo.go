package repository

import (
	"SimPulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ScheduledJobRepo interface {
	Create(ctx context.Context, job *model.ScheduledJob) error
	// MarkCompleted 将任务标记为完成
	MarkCompleted(ctx context.Context, id uint64, completedAt time.Time) error
	// MarkFailed 将任务标记为失败并记录错误信息
	MarkFailed(ctx context.Context, id uint64, completedAt time.Time, errMsg string) error
	// ListRecent 按计划时间倒序返回最近的任务记录
	ListRecent(ctx context.Context, limit int) ([]*model.ScheduledJob, error)
}

type scheduledJobRepoImpl struct {
	db *gorm.DB
}

func NewScheduledJobRepository(db *gorm.DB) ScheduledJobRepo {
	return &scheduledJobRepoImpl{db: db}
}

func (r *scheduledJobRepoImpl) Create(ctx context.Context, job *model.ScheduledJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *scheduledJobRepoImpl) MarkCompleted(ctx context.Context, id uint64, completedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ScheduledJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": completedAt,
		}).Error
}

func (r *scheduledJobRepoImpl) MarkFailed(ctx context.Context, id uint64, completedAt time.Time, errMsg string) error {
	if len(errMsg) > 512 {
		errMsg = errMsg[:512]
	}
	return r.db.WithContext(ctx).Model(&model.ScheduledJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": completedAt,
			"error":        errMsg,
		}).Error
}

func (r *scheduledJobRepoImpl) ListRecent(ctx context.Context, limit int) ([]*model.ScheduledJob, error) {
	jobs := make([]*model.ScheduledJob, 0)
	result := r.db.WithContext(ctx).
		Order("scheduled_at DESC").
		Limit(limit).
		Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}
