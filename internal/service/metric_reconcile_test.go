package service

import (
	"SimPulse/internal/model"
	"SimPulse/internal/platform"
	"testing"
)

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		baseline int
		want     int
	}{
		{"normal growth", 180, 100, 80},
		{"no change", 100, 100, 0},
		{"first reading", 50, 0, 50},
		{"counter reset", 10, 40, 10},
		{"reset to zero", 0, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeDelta(tt.current, tt.baseline); got != tt.want {
				t.Errorf("computeDelta(%d, %d) = %d, want %d", tt.current, tt.baseline, got, tt.want)
			}
		})
	}
}

func TestReconcileDeltasPerCounter(t *testing.T) {
	// views 回退按重启处理，其余计数器照常取差值
	current := platform.VideoMetrics{Views: 10, Likes: 60, Comments: 5, Shares: 3}
	baseline := platform.VideoMetrics{Views: 40, Likes: 50, Comments: 5, Shares: 1}

	got := reconcileDeltas(current, baseline)

	if got.Views != 10 {
		t.Errorf("views delta = %d, want 10 (reset)", got.Views)
	}
	if got.Likes != 10 {
		t.Errorf("likes delta = %d, want 10", got.Likes)
	}
	if got.Comments != 0 {
		t.Errorf("comments delta = %d, want 0", got.Comments)
	}
	if got.Shares != 2 {
		t.Errorf("shares delta = %d, want 2", got.Shares)
	}
}

func TestBaselineOf(t *testing.T) {
	if got := baselineOf(nil); got != (platform.VideoMetrics{}) {
		t.Errorf("baselineOf(nil) = %+v, want zero metrics", got)
	}

	snap := &model.MetricSnapshot{Views: 100, Likes: 20, Comments: 5, Shares: 2}
	got := baselineOf(snap)
	want := platform.VideoMetrics{Views: 100, Likes: 20, Comments: 5, Shares: 2}
	if got != want {
		t.Errorf("baselineOf(snap) = %+v, want %+v", got, want)
	}
}
