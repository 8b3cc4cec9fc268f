package platform

import (
	"SimPulse/internal/api/config"
	"SimPulse/internal/pkg/consts"
	"context"
	"errors"
	"strings"
	"time"
)

// ErrPlatformUnsupported 平台名不在闭集内
var ErrPlatformUnsupported = errors.New("不支持的发布平台")

// VideoMetrics 平台侧的累计互动计数
type VideoMetrics struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// UploadRequest 视频发布请求，VideoURL 为制品的限时访问地址
type UploadRequest struct {
	VideoURL    string
	Title       string
	Description string
	Tags        []string
}

// UploadResult 平台返回的发布结果
type UploadResult struct {
	PlatformID string
	URL        string
}

// Service 单个平台的两项能力：发布视频、读取指标。
// GetVideoMetrics 在指标缺失时返回零值而非错误；传输层失败才返回 error。
type Service interface {
	UploadVideo(ctx context.Context, req *UploadRequest) (*UploadResult, error)
	GetVideoMetrics(ctx context.Context, platformID string) (*VideoMetrics, error)
}

// Registry 平台变体的闭集查找表。
// 新增平台时在 NewRegistry 中登记新变体，调用方不感知具体实现。
type Registry interface {
	Get(name string) (Service, error)
	Names() []string
}

type registry struct {
	services map[string]Service
	names    []string
}

func NewRegistry(cfg *config.PlatformsConfig) Registry {
	timeout := time.Duration(cfg.FetchTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	r := &registry{services: make(map[string]Service)}

	if cfg.YouTube.Enabled {
		r.add(consts.PlatformYouTube, newYouTubeService(&cfg.YouTube, timeout))
	}
	if cfg.TikTok.Enabled {
		r.add(consts.PlatformTikTok, newTikTokService(&cfg.TikTok, timeout))
	}
	if cfg.Instagram.Enabled {
		r.add(consts.PlatformInstagram, newInstagramService(&cfg.Instagram, timeout))
	}

	return r
}

func (r *registry) add(name string, svc Service) {
	r.services[name] = svc
	r.names = append(r.names, name)
}

func (r *registry) Get(name string) (Service, error) {
	svc, ok := r.services[strings.ToLower(name)]
	if !ok {
		return nil, ErrPlatformUnsupported
	}
	return svc, nil
}

func (r *registry) Names() []string {
	return r.names
}
