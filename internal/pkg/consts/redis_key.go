package consts

const (
	// MetricsSeriesKey 时序查询缓存: days:platform:metric
	MetricsSeriesKey = "metrics:series:"
	// MetricsCollectLockKey 小时级采集互斥锁
	MetricsCollectLockKey = "metrics:collect:lock"
	// SnapshotStatsKey 快照统计缓存
	SnapshotStatsKey = "metrics:snapshot:stats"
)
