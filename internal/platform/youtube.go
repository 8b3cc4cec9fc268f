package platform

import (
	"SimPulse/internal/api/config"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	youtubeDataURL   = "https://www.googleapis.com/youtube/v3"
	youtubeUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos"
	youtubeTokenURL  = "https://oauth2.googleapis.com/token"
)

type youtubeService struct {
	cfg    *config.YouTubeConfig
	client *resty.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func newYouTubeService(cfg *config.YouTubeConfig, timeout time.Duration) *youtubeService {
	return &youtubeService{
		cfg:    cfg,
		client: resty.New().SetTimeout(timeout),
	}
}

type youtubeStatsResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// GetVideoMetrics 通过只读 API Key 拉取统计。YouTube 不提供分享数。
func (s *youtubeService) GetVideoMetrics(ctx context.Context, platformID string) (*VideoMetrics, error) {
	var stats youtubeStatsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "statistics",
			"id":   platformID,
			"key":  s.cfg.ApiKey,
		}).
		SetResult(&stats).
		Get(youtubeDataURL + "/videos")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube stats request failed: %s", resp.Status())
	}

	// 视频被删除或尚未产生统计时返回零值
	if len(stats.Items) == 0 {
		return &VideoMetrics{}, nil
	}

	st := stats.Items[0].Statistics
	return &VideoMetrics{
		Views:    atoiOrZero(st.ViewCount),
		Likes:    atoiOrZero(st.LikeCount),
		Comments: atoiOrZero(st.CommentCount),
		Shares:   0,
	}, nil
}

func (s *youtubeService) UploadVideo(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	token, err := s.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"snippet": map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"tags":        append(req.Tags, "simulation", "physics", "satisfying", "shorts"),
			"categoryId":  "28", // Science & Technology
		},
		"status": map[string]interface{}{
			"privacyStatus":           "public",
			"selfDeclaredMadeForKids": false,
		},
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	// 拉取制品流，直接转发到分片上传接口
	srcResp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(req.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video artifact: %w", err)
	}
	defer srcResp.RawBody().Close()

	var result struct {
		ID string `json:"id"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"uploadType": "multipart",
			"part":       "snippet,status",
		}).
		SetMultipartField("metadata", "", "application/json", bytes.NewReader(metaJSON)).
		SetMultipartField("video", "video.mp4", "video/mp4", srcResp.RawBody()).
		SetResult(&result).
		Post(youtubeUploadURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube upload failed: %s", resp.Status())
	}
	if result.ID == "" {
		return nil, fmt.Errorf("youtube upload response missing video id")
	}

	return &UploadResult{
		PlatformID: result.ID,
		URL:        "https://youtube.com/watch?v=" + result.ID,
	}, nil
}

// getAccessToken 用 refresh token 换取访问令牌，带本地缓存
func (s *youtubeService) getAccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     s.cfg.ClientID,
			"client_secret": s.cfg.ClientSecret,
			"refresh_token": s.cfg.RefreshToken,
			"grant_type":    "refresh_token",
		}).
		SetResult(&token).
		Post(youtubeTokenURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() || token.AccessToken == "" {
		return "", fmt.Errorf("youtube token refresh failed: %s", resp.Status())
	}

	s.accessToken = token.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
	return s.accessToken, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
