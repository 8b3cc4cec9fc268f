package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/pkg/llm"
	"SimPulse/internal/pkg/minio"
	"SimPulse/internal/pkg/util"
	"SimPulse/internal/pkg/video"
	"SimPulse/internal/platform"
	"SimPulse/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// presignExpiry 预签名地址有效期，覆盖一轮发布所需时间即可
const presignExpiry = 2 * time.Hour

type UploadService interface {
	// ProcessDailyUploads 执行一轮每日内容管线：
	// 生成候选视频 → AI 评分 → 选出高分视频 → 发布到全部启用平台。
	// 单个视频或单个平台失败不中断整轮。
	ProcessDailyUploads(ctx context.Context) error
	// GetRecentUploads 返回最近的发布记录及其最新累计指标
	GetRecentUploads(ctx context.Context, limit int) ([]*dto.RecentUploadDTO, error)
	// GetTopVideos 按最新播放量返回表现最好的发布记录
	GetTopVideos(ctx context.Context, limit int) ([]*dto.TopVideoDTO, error)
}

type uploadServiceImpl struct {
	uploadRepo   repository.UploadRepo
	videoRepo    repository.VideoRepo
	simRepo      repository.SimulationRepo
	snapshotRepo repository.MetricSnapshotRepo
	platforms    platform.Registry
	generator    video.Generator
	analyzer     llm.Analyzer
	variations   int
	dailyPicks   int
	now          func() time.Time
}

func NewUploadService(
	uploadRepo repository.UploadRepo,
	videoRepo repository.VideoRepo,
	simRepo repository.SimulationRepo,
	snapshotRepo repository.MetricSnapshotRepo,
	platforms platform.Registry,
	generator video.Generator,
	analyzer llm.Analyzer,
	variations int,
	dailyPicks int,
) UploadService {
	if variations <= 0 {
		variations = 2
	}
	if dailyPicks <= 0 {
		dailyPicks = 3
	}
	return &uploadServiceImpl{
		uploadRepo:   uploadRepo,
		videoRepo:    videoRepo,
		simRepo:      simRepo,
		snapshotRepo: snapshotRepo,
		platforms:    platforms,
		generator:    generator,
		analyzer:     analyzer,
		variations:   variations,
		dailyPicks:   dailyPicks,
		now:          time.Now,
	}
}

func (s *uploadServiceImpl) ProcessDailyUploads(ctx context.Context) error {
	generated := s.generateCandidates(ctx)
	if len(generated) == 0 {
		log.WarnContext(ctx, "daily pipeline produced no candidate videos")
		return nil
	}

	scored := s.analyzeCandidates(ctx, generated)

	sort.Slice(scored, func(i, j int) bool {
		return scoreOf(scored[i]) > scoreOf(scored[j])
	})
	picks := scored
	if len(picks) > s.dailyPicks {
		picks = picks[:s.dailyPicks]
	}

	for _, v := range picks {
		s.publishVideo(ctx, v)
	}

	log.InfoContext(ctx, "daily upload pipeline finished",
		"generated", len(generated),
		"scored", len(scored),
		"published", len(picks))
	return nil
}

// generateCandidates 为每种模拟类型生成若干随机参数变体
func (s *uploadServiceImpl) generateCandidates(ctx context.Context) []*model.Video {
	videos := make([]*model.Video, 0, len(consts.SimulationTypes)*s.variations)

	for _, simType := range consts.SimulationTypes {
		for i := 0; i < s.variations; i++ {
			params := video.RandomParams(simType)
			paramsJSON, _ := json.Marshal(params)

			sim := &model.Simulation{
				Name:       fmt.Sprintf("%s-%s", simType, uuid.NewString()[:8]),
				Type:       simType,
				Parameters: string(paramsJSON),
				Status:     consts.SimulationStatusPending,
			}
			if err := s.simRepo.Create(ctx, sim); err != nil {
				log.ErrorContext(ctx, "create simulation failed", "type", simType, "err", err)
				continue
			}

			artifact, err := s.generator.Generate(ctx, uuid.NewString(), simType, params)
			if err != nil {
				log.ErrorContext(ctx, "generate simulation video failed",
					"simulation_id", sim.ID, "type", simType, "err", err)
				_ = s.simRepo.UpdateStatus(ctx, sim.ID, consts.SimulationStatusFailed)
				continue
			}

			v := &model.Video{
				SimulationID: sim.ID,
				ObjectKey:    artifact.ObjectKey,
				PreviewKey:   artifact.PreviewKey,
				Duration:     artifact.Duration,
				Status:       consts.VideoStatusGenerated,
			}
			if err = s.videoRepo.Create(ctx, v); err != nil {
				log.ErrorContext(ctx, "create video record failed", "simulation_id", sim.ID, "err", err)
				continue
			}
			_ = s.simRepo.UpdateStatus(ctx, sim.ID, consts.SimulationStatusCompleted)

			v.Simulation = sim
			videos = append(videos, v)
		}
	}
	return videos
}

// analyzeCandidates 用视觉模型给候选视频打分并生成标题文案。
// 评分失败的视频保留零分，仍参与排序但基本不会入选。
func (s *uploadServiceImpl) analyzeCandidates(ctx context.Context, videos []*model.Video) []*model.Video {
	for _, v := range videos {
		previewURL, err := minio.PresignedURL(ctx, v.PreviewKey, presignExpiry)
		if err != nil {
			log.ErrorContext(ctx, "presign preview failed", "video_id", v.ID, "err", err)
			continue
		}

		analysis, err := s.analyzer.AnalyzeVideo(ctx, []string{previewURL}, v.Simulation.Type)
		if err != nil {
			log.ErrorContext(ctx, "analyze video failed", "video_id", v.ID, "err", err)
			continue
		}

		if err = s.videoRepo.UpdateAnalysis(ctx, v.ID, analysis.Score, analysis.SuggestedTitle, analysis.SuggestedDescription); err != nil {
			log.ErrorContext(ctx, "save video analysis failed", "video_id", v.ID, "err", err)
			continue
		}
		v.AiScore = util.PtrFloat64(analysis.Score)
		v.Title = analysis.SuggestedTitle
		v.Description = analysis.SuggestedDescription
	}
	return videos
}

// publishVideo 把单个视频发布到全部启用平台，逐平台落 Upload 记录。
// 全平台成功后删除制品释放存储，预览帧保留供复盘。
func (s *uploadServiceImpl) publishVideo(ctx context.Context, v *model.Video) {
	videoURL, err := minio.PresignedURL(ctx, v.ObjectKey, presignExpiry)
	if err != nil {
		log.ErrorContext(ctx, "presign video failed", "video_id", v.ID, "err", err)
		return
	}

	req := &platform.UploadRequest{
		VideoURL:    videoURL,
		Title:       v.Title,
		Description: v.Description,
		Tags:        generateTags(v.Simulation.Type),
	}

	allOK := true
	for _, name := range s.platforms.Names() {
		svc, err := s.platforms.Get(name)
		if err != nil {
			continue
		}

		upload := &model.Upload{
			VideoID:    v.ID,
			Platform:   name,
			UploadedAt: s.now().UTC(),
		}

		result, err := svc.UploadVideo(ctx, req)
		if err != nil {
			log.ErrorContext(ctx, "platform upload failed",
				"video_id", v.ID, "platform", name, "err", err)
			upload.Status = consts.UploadStatusFailed
			allOK = false
		} else {
			upload.Status = consts.UploadStatusPublished
			upload.PlatformID = result.PlatformID
			upload.URL = result.URL
		}

		if err = s.uploadRepo.Create(ctx, upload); err != nil {
			log.ErrorContext(ctx, "create upload record failed",
				"video_id", v.ID, "platform", name, "err", err)
			allOK = false
		}
	}

	if err = s.videoRepo.UpdateStatus(ctx, v.ID, consts.VideoStatusSelected); err != nil {
		log.ErrorContext(ctx, "mark video selected failed", "video_id", v.ID, "err", err)
	}

	if allOK {
		if err = minio.DeleteFile(ctx, v.ObjectKey); err != nil {
			log.WarnContext(ctx, "delete published artifact failed", "video_id", v.ID, "err", err)
		}
	}
}

func (s *uploadServiceImpl) GetRecentUploads(ctx context.Context, limit int) ([]*dto.RecentUploadDTO, error) {
	if limit <= 0 {
		limit = 10
	}

	uploads, err := s.uploadRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RecentUploadDTO, 0, len(uploads))
	for _, upload := range uploads {
		item := &dto.RecentUploadDTO{
			ID:         upload.ID,
			Platform:   upload.Platform,
			URL:        upload.URL,
			Status:     upload.Status,
			UploadedAt: upload.UploadedAt,
		}
		if upload.Video != nil {
			item.VideoTitle = upload.Video.Title
			if upload.Video.Simulation != nil {
				item.SimulationType = upload.Video.Simulation.Type
			}
		}

		snap, err := s.snapshotRepo.GetLatestForUpload(ctx, upload.ID)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			item.Metrics = &dto.UploadMetricsDTO{
				Views:    snap.Views,
				Likes:    snap.Likes,
				Comments: snap.Comments,
				Shares:   snap.Shares,
			}
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *uploadServiceImpl) GetTopVideos(ctx context.Context, limit int) ([]*dto.TopVideoDTO, error) {
	if limit <= 0 {
		limit = 5
	}

	uploads, err := s.uploadRepo.ListByStatusSince(ctx, consts.UploadStatusPublished, time.Time{}, "")
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TopVideoDTO, 0, len(uploads))
	for _, upload := range uploads {
		snap, err := s.snapshotRepo.GetLatestForUpload(ctx, upload.ID)
		if err != nil {
			return nil, err
		}
		if snap == nil {
			continue
		}

		item := &dto.TopVideoDTO{
			UploadID: upload.ID,
			VideoID:  upload.VideoID,
			Platform: upload.Platform,
			URL:      upload.URL,
			Views:    snap.Views,
			Likes:    snap.Likes,
			Comments: snap.Comments,
			Shares:   snap.Shares,
		}
		if upload.Video != nil {
			item.Title = upload.Video.Title
			item.AiScore = upload.Video.AiScore
			if upload.Video.Simulation != nil {
				item.SimulationType = upload.Video.Simulation.Type
			}
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Views > items[j].Views
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func scoreOf(v *model.Video) float64 {
	if v.AiScore == nil {
		return 0
	}
	return *v.AiScore
}

// generateTags 按模拟类型拼出发布话题标签
func generateTags(simType string) []string {
	base := []string{"physics", "simulation", "satisfying", "shorts"}
	switch simType {
	case "bouncing_balls":
		return append(base, "bouncingballs", "asmr")
	case "particle_physics":
		return append(base, "particles", "generativeart")
	case "fluid_dynamics":
		return append(base, "fluid", "oddlysatisfying")
	case "gravity_sim":
		return append(base, "gravity", "space")
	}
	return base
}
