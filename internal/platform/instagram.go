package platform

import (
	"SimPulse/internal/api/config"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const instagramGraphURL = "https://graph.facebook.com/v18.0"

type instagramService struct {
	cfg    *config.InstagramConfig
	client *resty.Client
}

func newInstagramService(cfg *config.InstagramConfig, timeout time.Duration) *instagramService {
	return &instagramService{
		cfg:    cfg,
		client: resty.New().SetBaseURL(instagramGraphURL).SetTimeout(timeout),
	}
}

type instagramInsightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value int `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

func (s *instagramService) GetVideoMetrics(ctx context.Context, platformID string) (*VideoMetrics, error) {
	var insights instagramInsightsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"metric":       "reach,likes,comments,shares",
			"access_token": s.cfg.AccessToken,
		}).
		SetResult(&insights).
		Get("/" + platformID + "/insights")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("instagram insights request failed: %s", resp.Status())
	}

	metrics := &VideoMetrics{}
	for _, m := range insights.Data {
		if len(m.Values) == 0 {
			continue
		}
		switch m.Name {
		case "reach":
			metrics.Views = m.Values[0].Value
		case "likes":
			metrics.Likes = m.Values[0].Value
		case "comments":
			metrics.Comments = m.Values[0].Value
		case "shares":
			metrics.Shares = m.Values[0].Value
		}
	}
	return metrics, nil
}

// UploadVideo 两步发布：先创建媒体容器，再执行 publish
func (s *instagramService) UploadVideo(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	caption := req.Title + "\n\n" + req.Description
	if len(req.Tags) > 0 {
		caption += "\n\n#" + strings.Join(req.Tags, " #")
	}

	var container struct {
		ID string `json:"id"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"video_url":    req.VideoURL,
			"caption":      caption,
			"media_type":   "REELS",
			"access_token": s.cfg.AccessToken,
		}).
		SetResult(&container).
		Post("/" + s.cfg.BusinessAccountID + "/media")
	if err != nil {
		return nil, err
	}
	if resp.IsError() || container.ID == "" {
		return nil, fmt.Errorf("instagram container creation failed: %s", resp.Status())
	}

	var published struct {
		ID string `json:"id"`
	}
	resp, err = s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"creation_id":  container.ID,
			"access_token": s.cfg.AccessToken,
		}).
		SetResult(&published).
		Post("/" + s.cfg.BusinessAccountID + "/media_publish")
	if err != nil {
		return nil, err
	}
	if resp.IsError() || published.ID == "" {
		return nil, fmt.Errorf("instagram publishing failed: %s", resp.Status())
	}

	return &UploadResult{
		PlatformID: published.ID,
		URL:        "https://www.instagram.com/p/" + published.ID + "/",
	}, nil
}
