package job

import (
	"SimPulse/internal/pkg/logger"
	"SimPulse/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// DailyUploadJob 每日内容生成与发布任务
type DailyUploadJob struct {
	uploadSvc service.UploadService
}

func NewDailyUploadJob(uploadSvc service.UploadService) *DailyUploadJob {
	return &DailyUploadJob{uploadSvc: uploadSvc}
}

func (s *DailyUploadJob) Run() {
	traceID := "job-upload-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.uploadSvc.ProcessDailyUploads(ctx); err != nil {
		log.ErrorContext(ctx, "daily upload pipeline error", "err", err)
	}
}
