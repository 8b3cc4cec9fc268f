package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/pkg/util"
	"SimPulse/internal/repository"
	"context"
	"time"
)

type DashboardService interface {
	// GetStats 返回仪表盘总览：数量统计与全局累计指标
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	// GetPlatformComparison 返回各平台的总量与单条均值对比
	GetPlatformComparison(ctx context.Context) ([]*dto.PlatformComparisonDTO, error)
}

type dashboardServiceImpl struct {
	uploadRepo   repository.UploadRepo
	videoRepo    repository.VideoRepo
	snapshotRepo repository.MetricSnapshotRepo
	now          func() time.Time
}

func NewDashboardService(
	uploadRepo repository.UploadRepo,
	videoRepo repository.VideoRepo,
	snapshotRepo repository.MetricSnapshotRepo,
) DashboardService {
	return &dashboardServiceImpl{
		uploadRepo:   uploadRepo,
		videoRepo:    videoRepo,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	totalVideos, err := s.videoRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalUploads, err := s.uploadRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	todayUploads, err := s.uploadRepo.CountSince(ctx, util.GetMidnightUTC(s.now().UTC()))
	if err != nil {
		return nil, err
	}

	platformCounts, err := s.uploadRepo.CountByPlatform(ctx)
	if err != nil {
		return nil, err
	}
	platformStats := make([]*dto.PlatformStatDTO, 0, len(platformCounts))
	for _, pc := range platformCounts {
		platformStats = append(platformStats, &dto.PlatformStatDTO{
			Platform: pc.Platform,
			Count:    pc.Count,
		})
	}

	res := &dto.DashboardStatsDTO{
		TotalVideos:   totalVideos,
		TotalUploads:  totalUploads,
		TodayUploads:  todayUploads,
		PlatformStats: platformStats,
	}

	// 全局累计取每条发布记录最新一条快照的累计值求和
	published, err := s.uploadRepo.ListByStatus(ctx, consts.UploadStatusPublished)
	if err != nil {
		return nil, err
	}
	withMetrics := 0
	for _, upload := range published {
		snap, err := s.snapshotRepo.GetLatestForUpload(ctx, upload.ID)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			continue
		}
		res.TotalViews += snap.Views
		res.TotalLikes += snap.Likes
		withMetrics++
	}
	if withMetrics > 0 {
		res.AvgViews = res.TotalViews / withMetrics
	}
	return res, nil
}

func (s *dashboardServiceImpl) GetPlatformComparison(ctx context.Context) ([]*dto.PlatformComparisonDTO, error) {
	published, err := s.uploadRepo.ListByStatus(ctx, consts.UploadStatusPublished)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[string]*dto.PlatformComparisonDTO)
	order := make([]string, 0)

	for _, upload := range published {
		snap, err := s.snapshotRepo.GetLatestForUpload(ctx, upload.ID)
		if err != nil {
			return nil, err
		}

		stat, ok := byPlatform[upload.Platform]
		if !ok {
			stat = &dto.PlatformComparisonDTO{Platform: upload.Platform}
			byPlatform[upload.Platform] = stat
			order = append(order, upload.Platform)
		}
		stat.Count++
		if snap != nil {
			stat.TotalViews += snap.Views
			stat.TotalLikes += snap.Likes
			stat.TotalComments += snap.Comments
			stat.TotalShares += snap.Shares
		}
	}

	res := make([]*dto.PlatformComparisonDTO, 0, len(order))
	for _, name := range order {
		stat := byPlatform[name]
		if stat.Count > 0 {
			n := int(stat.Count)
			stat.AvgViews = stat.TotalViews / n
			stat.AvgLikes = stat.TotalLikes / n
			stat.AvgComments = stat.TotalComments / n
			stat.AvgShares = stat.TotalShares / n
		}
		res = append(res, stat)
	}
	return res, nil
}
