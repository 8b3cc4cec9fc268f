package dto

import "time"

// PlatformStatDTO 单平台发布数量
type PlatformStatDTO struct {
	Platform string `json:"platform"`
	Count    int64  `json:"count"`
}

// DashboardStatsDTO 仪表盘总览
type DashboardStatsDTO struct {
	TotalVideos   int64              `json:"totalVideos"`
	TotalUploads  int64              `json:"totalUploads"`
	TodayUploads  int64              `json:"todayUploads"`
	TotalViews    int                `json:"totalViews"`
	TotalLikes    int                `json:"totalLikes"`
	AvgViews      int                `json:"avgViews"`
	PlatformStats []*PlatformStatDTO `json:"platformStats"`
}

// UploadMetricsDTO 发布记录的最新累计指标
type UploadMetricsDTO struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// RecentUploadDTO 最近发布列表项
type RecentUploadDTO struct {
	ID             uint64            `json:"id"`
	Platform       string            `json:"platform"`
	URL            string            `json:"url"`
	Status         string            `json:"status"`
	UploadedAt     time.Time         `json:"uploadedAt"`
	VideoTitle     string            `json:"videoTitle"`
	SimulationType string            `json:"simulationType"`
	Metrics        *UploadMetricsDTO `json:"metrics,omitempty"`
}

// TopVideoDTO 表现最好的发布记录
type TopVideoDTO struct {
	UploadID       uint64   `json:"uploadId"`
	VideoID        uint64   `json:"videoId"`
	Title          string   `json:"title"`
	Platform       string   `json:"platform"`
	URL            string   `json:"url"`
	SimulationType string   `json:"simulationType"`
	AiScore        *float64 `json:"aiScore"`
	Views          int      `json:"views"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Shares         int      `json:"shares"`
}

// PlatformComparisonDTO 平台横向对比
type PlatformComparisonDTO struct {
	Platform      string `json:"platform"`
	Count         int64  `json:"count"`
	TotalViews    int    `json:"totalViews"`
	TotalLikes    int    `json:"totalLikes"`
	TotalComments int    `json:"totalComments"`
	TotalShares   int    `json:"totalShares"`
	AvgViews      int    `json:"avgViews"`
	AvgLikes      int    `json:"avgLikes"`
	AvgComments   int    `json:"avgComments"`
	AvgShares     int    `json:"avgShares"`
}
