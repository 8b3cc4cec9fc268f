package job

import (
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/pkg/logger"
	"SimPulse/internal/pkg/redis"
	"SimPulse/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// MetricSnapshotJob 每小时指标采集任务
type MetricSnapshotJob struct {
	metricsSvc service.MetricsService
	locker     redis.Locker
}

func NewMetricSnapshotJob(metricsSvc service.MetricsService, locker redis.Locker) *MetricSnapshotJob {
	return &MetricSnapshotJob{
		metricsSvc: metricsSvc,
		locker:     locker,
	}
}

func (s *MetricSnapshotJob) Run() {
	traceID := "job-metrics-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 分布式锁保证多实例部署时同一小时只跑一轮采集
	ok, err := s.locker.TryLock(ctx, consts.MetricsCollectLockKey, traceID, 30*time.Minute)
	if err != nil {
		log.ErrorContext(ctx, "acquire metrics collect lock error", "err", err)
		return
	}
	if !ok {
		log.WarnContext(ctx, "metrics collection already running, skip this round")
		return
	}
	defer s.locker.UnLock(ctx, consts.MetricsCollectLockKey, traceID)

	if err = s.metricsSvc.CollectHourlySnapshots(ctx); err != nil {
		log.ErrorContext(ctx, "hourly metrics collection error", "err", err)
	}
}
