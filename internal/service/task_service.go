package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/pkg/redis"
	"SimPulse/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type TaskService interface {
	// TriggerTask 手动触发一次后台任务并同步执行，返回执行记录
	TriggerTask(ctx context.Context, taskType string) (*dto.ScheduledTaskDTO, error)
	// GetTaskStatus 返回最近的任务执行记录
	GetTaskStatus(ctx context.Context, limit int) ([]*dto.ScheduledTaskDTO, error)
}

type taskServiceImpl struct {
	jobRepo    repository.ScheduledJobRepo
	metricsSvc MetricsService
	uploadSvc  UploadService
	locker     redis.Locker
	now        func() time.Time
}

func NewTaskService(
	jobRepo repository.ScheduledJobRepo,
	metricsSvc MetricsService,
	uploadSvc UploadService,
	locker redis.Locker,
) TaskService {
	return &taskServiceImpl{
		jobRepo:    jobRepo,
		metricsSvc: metricsSvc,
		uploadSvc:  uploadSvc,
		locker:     locker,
		now:        time.Now,
	}
}

func (s *taskServiceImpl) TriggerTask(ctx context.Context, taskType string) (*dto.ScheduledTaskDTO, error) {
	var run func(ctx context.Context) error
	switch taskType {
	case consts.TaskTypeDailyUpload:
		run = s.uploadSvc.ProcessDailyUploads
	case consts.TaskTypeMetricsSync:
		// 与定时采集共用互斥锁，采集进行中时手动触发返回冲突
		lockVal := "task-" + uuid.NewString()
		ok, err := s.locker.TryLock(ctx, consts.MetricsCollectLockKey, lockVal, 30*time.Minute)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCollectRunning
		}
		defer s.locker.UnLock(ctx, consts.MetricsCollectLockKey, lockVal)
		run = s.metricsSvc.CollectHourlySnapshots
	case consts.TaskTypeCleanup:
		run = s.metricsSvc.CleanupOldSnapshots
	default:
		return nil, ErrTaskTypeUnknown
	}

	job := &model.ScheduledJob{
		Type:        taskType,
		ScheduledAt: s.now().UTC(),
		Status:      consts.TaskStatusRunning,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := run(ctx); err != nil {
		log.ErrorContext(ctx, "manual task failed", "type", taskType, "job_id", job.ID, "err", err)
		completedAt := s.now().UTC()
		if markErr := s.jobRepo.MarkFailed(ctx, job.ID, completedAt, err.Error()); markErr != nil {
			return nil, markErr
		}
		job.Status = consts.TaskStatusFailed
		job.Error = err.Error()
		job.CompletedAt = &completedAt
		return toTaskDTO(job), nil
	}

	completedAt := s.now().UTC()
	if err := s.jobRepo.MarkCompleted(ctx, job.ID, completedAt); err != nil {
		return nil, err
	}
	job.Status = consts.TaskStatusCompleted
	job.CompletedAt = &completedAt
	return toTaskDTO(job), nil
}

func (s *taskServiceImpl) GetTaskStatus(ctx context.Context, limit int) ([]*dto.ScheduledTaskDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	jobs, err := s.jobRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ScheduledTaskDTO, 0, len(jobs))
	for _, job := range jobs {
		res = append(res, toTaskDTO(job))
	}
	return res, nil
}

func toTaskDTO(job *model.ScheduledJob) *dto.ScheduledTaskDTO {
	return &dto.ScheduledTaskDTO{
		ID:          job.ID,
		Type:        job.Type,
		ScheduledAt: job.ScheduledAt,
		Status:      job.Status,
		Error:       job.Error,
		CompletedAt: job.CompletedAt,
	}
}
