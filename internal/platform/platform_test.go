package platform

import (
	"SimPulse/internal/api/config"
	"errors"
	"testing"
)

func TestRegistryClosedSet(t *testing.T) {
	cfg := &config.PlatformsConfig{
		FetchTimeout: 5,
		YouTube:      config.YouTubeConfig{Enabled: true, ApiKey: "key"},
		TikTok:       config.TikTokConfig{Enabled: true, AccessToken: "token"},
	}

	reg := NewRegistry(cfg)

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 enabled platforms", names)
	}

	if _, err := reg.Get("youtube"); err != nil {
		t.Errorf("Get(youtube) err = %v", err)
	}
	if _, err := reg.Get("tiktok"); err != nil {
		t.Errorf("Get(tiktok) err = %v", err)
	}
	// instagram 未启用
	if _, err := reg.Get("instagram"); !errors.Is(err, ErrPlatformUnsupported) {
		t.Errorf("Get(instagram) err = %v, want ErrPlatformUnsupported", err)
	}
	// 闭集外的平台名
	if _, err := reg.Get("vimeo"); !errors.Is(err, ErrPlatformUnsupported) {
		t.Errorf("Get(vimeo) err = %v, want ErrPlatformUnsupported", err)
	}
}

func TestRegistryEmpty(t *testing.T) {
	reg := NewRegistry(&config.PlatformsConfig{})

	if names := reg.Names(); len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
	if _, err := reg.Get("youtube"); !errors.Is(err, ErrPlatformUnsupported) {
		t.Errorf("Get on empty registry err = %v, want ErrPlatformUnsupported", err)
	}
}
