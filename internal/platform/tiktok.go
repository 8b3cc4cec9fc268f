package platform

import (
	"SimPulse/internal/api/config"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const tiktokOpenAPIURL = "https://open-api.tiktok.com"

type tiktokService struct {
	cfg    *config.TikTokConfig
	client *resty.Client
}

func newTikTokService(cfg *config.TikTokConfig, timeout time.Duration) *tiktokService {
	return &tiktokService{
		cfg:    cfg,
		client: resty.New().SetBaseURL(tiktokOpenAPIURL).SetTimeout(timeout),
	}
}

type tiktokVideoInfoResponse struct {
	Video struct {
		ViewCount    int `json:"view_count"`
		LikeCount    int `json:"like_count"`
		CommentCount int `json:"comment_count"`
		ShareCount   int `json:"share_count"`
	} `json:"video"`
}

func (s *tiktokService) GetVideoMetrics(ctx context.Context, platformID string) (*VideoMetrics, error) {
	var info tiktokVideoInfoResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.AccessToken).
		SetQueryParam("video_id", platformID).
		SetResult(&info).
		Get("/research/video/info/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		// 视频不可见时平台返回 404，按指标缺失处理
		if resp.StatusCode() == 404 {
			return &VideoMetrics{}, nil
		}
		return nil, fmt.Errorf("tiktok video info request failed: %s", resp.Status())
	}

	return &VideoMetrics{
		Views:    info.Video.ViewCount,
		Likes:    info.Video.LikeCount,
		Comments: info.Video.CommentCount,
		Shares:   info.Video.ShareCount,
	}, nil
}

func (s *tiktokService) UploadVideo(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	srcResp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(req.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video artifact: %w", err)
	}
	defer srcResp.RawBody().Close()

	caption := req.Title + "\n\n" + req.Description
	if len(req.Tags) > 0 {
		caption += "\n\n#" + strings.Join(req.Tags, " #")
	}

	var result struct {
		Video struct {
			VideoID  string `json:"video_id"`
			ShareURL string `json:"share_url"`
		} `json:"video"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.AccessToken).
		SetMultipartField("video", "video.mp4", "video/mp4", srcResp.RawBody()).
		SetMultipartFormData(map[string]string{
			"text":    caption,
			"privacy": "public",
		}).
		SetResult(&result).
		Post("/share/video/upload/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tiktok upload failed: %s", resp.Status())
	}
	if result.Video.VideoID == "" {
		return nil, fmt.Errorf("tiktok upload response missing video id")
	}

	return &UploadResult{
		PlatformID: result.Video.VideoID,
		URL:        result.Video.ShareURL,
	}, nil
}
