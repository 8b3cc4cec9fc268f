package dto

import "time"

// MetricPointDTO 时序图上的一个桶
type MetricPointDTO struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// MetricSeriesDTO 时序查询返回包装
type MetricSeriesDTO struct {
	Days     int               `json:"days"`
	Platform string            `json:"platform,omitempty"`
	Metric   string            `json:"metric"`
	Points   []*MetricPointDTO `json:"points"`
}

// MetricGrowthDTO 窗口内最新减最早的增长量
type MetricGrowthDTO struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// AggregatedMetricsDTO 单条发布记录的聚合指标
type AggregatedMetricsDTO struct {
	UploadID      uint64          `json:"uploadId"`
	Range         string          `json:"range"`
	TotalViews    int             `json:"totalViews"`
	TotalLikes    int             `json:"totalLikes"`
	TotalComments int             `json:"totalComments"`
	TotalShares   int             `json:"totalShares"`
	Growth        MetricGrowthDTO `json:"growth"`
}

// SnapshotStatsDTO 快照表运行状态
type SnapshotStatsDTO struct {
	Total       int64      `json:"total"`
	Today       int64      `json:"today"`
	Oldest      *time.Time `json:"oldest"`
	LastUpdated time.Time  `json:"lastUpdated"`
}
