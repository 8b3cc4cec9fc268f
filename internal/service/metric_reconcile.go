package service

import (
	"SimPulse/internal/model"
	"SimPulse/internal/platform"
)

// computeDelta 计算单个计数器相对基线的增量。
// 平台计数器可能回退（视频重新处理、接口异常），差值为负时
// 视为计数器从零重启，本桶增量取当前读数全量。回退是预期工况，不报错。
func computeDelta(current, baseline int) int {
	diff := current - baseline
	if diff >= 0 {
		return diff
	}
	return current
}

// reconcileDeltas 逐计数器独立计算增量，views 回退不影响 likes 的正常差值
func reconcileDeltas(current platform.VideoMetrics, baseline platform.VideoMetrics) platform.VideoMetrics {
	return platform.VideoMetrics{
		Views:    computeDelta(current.Views, baseline.Views),
		Likes:    computeDelta(current.Likes, baseline.Likes),
		Comments: computeDelta(current.Comments, baseline.Comments),
		Shares:   computeDelta(current.Shares, baseline.Shares),
	}
}

// baselineOf 提取基线快照的累计值，无基线时全部为零
func baselineOf(snap *model.MetricSnapshot) platform.VideoMetrics {
	if snap == nil {
		return platform.VideoMetrics{}
	}
	return platform.VideoMetrics{
		Views:    snap.Views,
		Likes:    snap.Likes,
		Comments: snap.Comments,
		Shares:   snap.Shares,
	}
}
