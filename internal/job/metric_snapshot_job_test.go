package job

import (
	"SimPulse/internal/service"
	"context"
	"errors"
	"testing"
	"time"
)

type stubMetricsService struct {
	service.MetricsService
	collected int
	err       error
}

func (s *stubMetricsService) CollectHourlySnapshots(_ context.Context) error {
	s.collected++
	return s.err
}

type fakeLocker struct {
	held     bool
	err      error
	acquired int
	released int
}

func (l *fakeLocker) TryLock(_ context.Context, _ string, _ string, _ time.Duration) (bool, error) {
	l.acquired++
	if l.err != nil {
		return false, l.err
	}
	return !l.held, nil
}

func (l *fakeLocker) UnLock(_ context.Context, _ string, _ string) {
	l.released++
}

func TestSnapshotJobCollectsWhenLockFree(t *testing.T) {
	locker := &fakeLocker{}
	svc := &stubMetricsService{}

	NewMetricSnapshotJob(svc, locker).Run()

	if svc.collected != 1 {
		t.Errorf("collect runs = %d, want 1 (free lock must not block the hourly job)", svc.collected)
	}
	if locker.acquired != 1 {
		t.Errorf("lock attempts = %d, want 1", locker.acquired)
	}
	if locker.released != 1 {
		t.Errorf("lock releases = %d, want 1", locker.released)
	}
}

func TestSnapshotJobSkipsWhenLockHeld(t *testing.T) {
	locker := &fakeLocker{held: true}
	svc := &stubMetricsService{}

	NewMetricSnapshotJob(svc, locker).Run()

	if svc.collected != 0 {
		t.Errorf("collect runs = %d, want 0 (held lock skips the round)", svc.collected)
	}
	if locker.released != 0 {
		t.Errorf("lock releases = %d, want 0 (never acquired)", locker.released)
	}
}

func TestSnapshotJobSkipsOnLockError(t *testing.T) {
	locker := &fakeLocker{err: errors.New("redis down")}
	svc := &stubMetricsService{}

	NewMetricSnapshotJob(svc, locker).Run()

	if svc.collected != 0 {
		t.Errorf("collect runs = %d, want 0", svc.collected)
	}
}
