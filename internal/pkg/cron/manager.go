package cron

import (
	"SimPulse/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	metricSnapshotJob  *job.MetricSnapshotJob
	dailyUploadJob     *job.DailyUploadJob
	snapshotCleanupJob *job.SnapshotCleanupJob
}

func NewCronManager(
	metricSnapshotJob *job.MetricSnapshotJob,
	dailyUploadJob *job.DailyUploadJob,
	snapshotCleanupJob *job.SnapshotCleanupJob,
) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		metricSnapshotJob:  metricSnapshotJob,
		dailyUploadJob:     dailyUploadJob,
		snapshotCleanupJob: snapshotCleanupJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 整点采集各平台指标
	if _, err := s.engine.AddJob("0 0 * * * *", s.metricSnapshotJob); err != nil {
		return err
	}
	// 每天 09:00 UTC 生成并发布内容
	if _, err := s.engine.AddJob("0 0 9 * * *", s.dailyUploadJob); err != nil {
		return err
	}
	// 每周日 02:00 UTC 清理过期快照
	if _, err := s.engine.AddJob("0 0 2 * * 0", s.snapshotCleanupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
