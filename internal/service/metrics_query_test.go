package service

import (
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/platform"
	"context"
	"errors"
	"testing"
	"time"
)

func TestSeriesDailyBucketsGapFilled(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	res, err := svc.GetMetricsOverTime(context.Background(), 7, "", "views")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	// 窗口两端的自然日都计入：7 天窗口覆盖 8 个日桶
	if len(res.Points) != 8 {
		t.Fatalf("bucket count = %d, want 8", len(res.Points))
	}
	if res.Points[0].Date != "2026-03-03" {
		t.Errorf("first bucket = %s, want 2026-03-03", res.Points[0].Date)
	}
	if res.Points[7].Date != "2026-03-10" {
		t.Errorf("last bucket = %s, want 2026-03-10", res.Points[7].Date)
	}
	for _, p := range res.Points {
		if p.Value != 0 {
			t.Errorf("empty bucket %s = %d, want 0", p.Date, p.Value)
		}
	}
}

func TestSeriesHourlyGranularity(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()

	now := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	res, err := svc.GetMetricsOverTime(context.Background(), 1, "", "views")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(res.Points) != 25 {
		t.Fatalf("bucket count = %d, want 25", len(res.Points))
	}
	if res.Points[0].Date != "2026-03-09T12:00:00Z" {
		t.Errorf("first bucket = %s, want 2026-03-09T12:00:00Z", res.Points[0].Date)
	}
	if res.Points[24].Date != "2026-03-10T12:00:00Z" {
		t.Errorf("last bucket = %s, want 2026-03-10T12:00:00Z", res.Points[24].Date)
	}
}

func TestSeriesFastPathSumsStoredDeltas(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := func(d int, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.UTC) }

	// 两条发布记录同一天的增量落进同一个日桶
	seedSnapshot(snapRepo, 1, day(8, 10), platform.VideoMetrics{Views: 120},
		&platform.VideoMetrics{Views: 70})
	seedSnapshot(snapRepo, 2, day(8, 15), platform.VideoMetrics{Views: 40},
		&platform.VideoMetrics{Views: 40})
	seedSnapshot(snapRepo, 1, day(9, 10), platform.VideoMetrics{Views: 150},
		&platform.VideoMetrics{Views: 30})

	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	res, err := svc.GetMetricsOverTime(context.Background(), 7, "", "views")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	got := make(map[string]int)
	for _, p := range res.Points {
		got[p.Date] = p.Value
	}
	if got["2026-03-08"] != 110 {
		t.Errorf("2026-03-08 = %d, want 110", got["2026-03-08"])
	}
	if got["2026-03-09"] != 30 {
		t.Errorf("2026-03-09 = %d, want 30", got["2026-03-09"])
	}
	if got["2026-03-07"] != 0 {
		t.Errorf("2026-03-07 = %d, want 0", got["2026-03-07"])
	}
}

func TestSeriesSlowPathRecomputesDeltas(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 窗口前的基线：累计 50
	seedSnapshot(snapRepo, 1, now.AddDate(0, 0, -8), platform.VideoMetrics{Views: 50}, nil)
	// 窗口内存在增量缺失的旧快照，整个查询走重算路径
	seedSnapshot(snapRepo, 1, time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
		platform.VideoMetrics{Views: 120}, nil)
	seedSnapshot(snapRepo, 1, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
		platform.VideoMetrics{Views: 150}, &platform.VideoMetrics{Views: 30})
	// 计数器回退：150 → 20，按重启处理
	seedSnapshot(snapRepo, 1, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		platform.VideoMetrics{Views: 20}, nil)

	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	res, err := svc.GetMetricsOverTime(context.Background(), 7, "", "views")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	got := make(map[string]int)
	for _, p := range res.Points {
		got[p.Date] = p.Value
	}
	if got["2026-03-07"] != 70 {
		t.Errorf("2026-03-07 = %d, want 70 (120-50 against pre-window baseline)", got["2026-03-07"])
	}
	if got["2026-03-08"] != 30 {
		t.Errorf("2026-03-08 = %d, want 30", got["2026-03-08"])
	}
	if got["2026-03-09"] != 20 {
		t.Errorf("2026-03-09 = %d, want 20 (reset takes current reading)", got["2026-03-09"])
	}
}

func TestSeriesPlatformFilter(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snapRepo.platforms[1] = consts.PlatformYouTube
	snapRepo.platforms[2] = consts.PlatformTikTok

	seedSnapshot(snapRepo, 1, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
		platform.VideoMetrics{Views: 100}, &platform.VideoMetrics{Views: 100})
	seedSnapshot(snapRepo, 2, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
		platform.VideoMetrics{Views: 40}, &platform.VideoMetrics{Views: 40})

	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	res, err := svc.GetMetricsOverTime(context.Background(), 7, consts.PlatformTikTok, "views")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	for _, p := range res.Points {
		if p.Date == "2026-03-08" && p.Value != 40 {
			t.Errorf("2026-03-08 = %d, want 40 (tiktok only)", p.Value)
		}
	}
}

func TestSeriesParamValidation(t *testing.T) {
	snapRepo := newFakeSnapshotRepo()
	uploadRepo := newFakeUploadRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestMetricsService(snapRepo, uploadRepo, &fakeRegistry{}, now)

	if _, err := svc.GetMetricsOverTime(context.Background(), 7, "", "subscribers"); !errors.Is(err, ErrMetricUnsupported) {
		t.Errorf("bad metric err = %v, want ErrMetricUnsupported", err)
	}
	if _, err := svc.GetMetricsOverTime(context.Background(), 0, "", "views"); !errors.Is(err, ErrParamInvalid) {
		t.Errorf("bad days err = %v, want ErrParamInvalid", err)
	}
}
