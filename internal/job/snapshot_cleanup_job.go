package job

import (
	"SimPulse/internal/pkg/logger"
	"SimPulse/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// SnapshotCleanupJob 过期快照清理任务
type SnapshotCleanupJob struct {
	metricsSvc service.MetricsService
}

func NewSnapshotCleanupJob(metricsSvc service.MetricsService) *SnapshotCleanupJob {
	return &SnapshotCleanupJob{metricsSvc: metricsSvc}
}

func (s *SnapshotCleanupJob) Run() {
	traceID := "job-cleanup-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.metricsSvc.CleanupOldSnapshots(ctx); err != nil {
		log.ErrorContext(ctx, "snapshot cleanup error", "err", err)
	}
}
