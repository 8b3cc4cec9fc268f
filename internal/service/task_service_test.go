package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/consts"
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeJobRepo struct {
	jobs   []*model.ScheduledJob
	nextID uint64
}

func (r *fakeJobRepo) Create(_ context.Context, job *model.ScheduledJob) error {
	r.nextID++
	job.ID = r.nextID
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, id uint64, completedAt time.Time) error {
	for _, j := range r.jobs {
		if j.ID == id {
			j.Status = consts.TaskStatusCompleted
			j.CompletedAt = &completedAt
			return nil
		}
	}
	return errors.New("job not found")
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, id uint64, completedAt time.Time, errMsg string) error {
	for _, j := range r.jobs {
		if j.ID == id {
			j.Status = consts.TaskStatusFailed
			j.Error = errMsg
			j.CompletedAt = &completedAt
			return nil
		}
	}
	return errors.New("job not found")
}

func (r *fakeJobRepo) ListRecent(_ context.Context, limit int) ([]*model.ScheduledJob, error) {
	res := make([]*model.ScheduledJob, len(r.jobs))
	copy(res, r.jobs)
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

type stubMetricsService struct {
	MetricsService
	collectErr error
	collected  int
	cleaned    int
}

func (s *stubMetricsService) CollectHourlySnapshots(_ context.Context) error {
	s.collected++
	return s.collectErr
}

func (s *stubMetricsService) CleanupOldSnapshots(_ context.Context) error {
	s.cleaned++
	return nil
}

type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (l *fakeLocker) TryLock(_ context.Context, _ string, _ string, _ time.Duration) (bool, error) {
	l.acquired++
	return !l.held, nil
}

func (l *fakeLocker) UnLock(_ context.Context, _ string, _ string) {
	l.released++
}

type stubUploadService struct {
	UploadService
	processed int
}

func (s *stubUploadService) ProcessDailyUploads(_ context.Context) error {
	s.processed++
	return nil
}

func (s *stubUploadService) GetRecentUploads(_ context.Context, _ int) ([]*dto.RecentUploadDTO, error) {
	return nil, nil
}

func TestTriggerTaskRunsAndRecords(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	metricsSvc := &stubMetricsService{}
	uploadSvc := &stubUploadService{}
	svc := NewTaskService(jobRepo, metricsSvc, uploadSvc, &fakeLocker{})

	task, err := svc.TriggerTask(context.Background(), consts.TaskTypeMetricsSync)
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}

	if metricsSvc.collected != 1 {
		t.Errorf("collect calls = %d, want 1", metricsSvc.collected)
	}
	if task.Status != consts.TaskStatusCompleted {
		t.Errorf("status = %s, want completed", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("completedAt not set")
	}
	if len(jobRepo.jobs) != 1 || jobRepo.jobs[0].Type != consts.TaskTypeMetricsSync {
		t.Errorf("job record = %+v, want one metrics_sync entry", jobRepo.jobs)
	}
}

func TestTriggerTaskRecordsFailure(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	metricsSvc := &stubMetricsService{collectErr: errors.New("platform down")}
	svc := NewTaskService(jobRepo, metricsSvc, &stubUploadService{}, &fakeLocker{})

	task, err := svc.TriggerTask(context.Background(), consts.TaskTypeMetricsSync)
	if err != nil {
		t.Fatalf("trigger should swallow task error into the record: %v", err)
	}

	if task.Status != consts.TaskStatusFailed {
		t.Errorf("status = %s, want failed", task.Status)
	}
	if task.Error != "platform down" {
		t.Errorf("error = %q, want platform down", task.Error)
	}
}

func TestTriggerTaskUnknownType(t *testing.T) {
	svc := NewTaskService(&fakeJobRepo{}, &stubMetricsService{}, &stubUploadService{}, &fakeLocker{})

	if _, err := svc.TriggerTask(context.Background(), "reindex"); !errors.Is(err, ErrTaskTypeUnknown) {
		t.Errorf("err = %v, want ErrTaskTypeUnknown", err)
	}
}

func TestGetTaskStatusNewestFirst(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	svc := NewTaskService(jobRepo, &stubMetricsService{}, &stubUploadService{}, &fakeLocker{})

	_, _ = svc.TriggerTask(context.Background(), consts.TaskTypeCleanup)
	_, _ = svc.TriggerTask(context.Background(), consts.TaskTypeDailyUpload)

	tasks, err := svc.GetTaskStatus(context.Background(), 10)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("task count = %d, want 2", len(tasks))
	}
	if tasks[0].Type != consts.TaskTypeDailyUpload {
		t.Errorf("first task = %s, want newest (daily_upload)", tasks[0].Type)
	}
}

func TestTriggerMetricsSyncWhileCollecting(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	metricsSvc := &stubMetricsService{}
	locker := &fakeLocker{held: true}
	svc := NewTaskService(jobRepo, metricsSvc, &stubUploadService{}, locker)

	if _, err := svc.TriggerTask(context.Background(), consts.TaskTypeMetricsSync); !errors.Is(err, ErrCollectRunning) {
		t.Fatalf("err = %v, want ErrCollectRunning", err)
	}
	if metricsSvc.collected != 0 {
		t.Errorf("collect runs = %d, want 0 while lock held", metricsSvc.collected)
	}
	if len(jobRepo.jobs) != 0 {
		t.Errorf("job records = %d, want 0 (rejected before recording)", len(jobRepo.jobs))
	}
	if locker.released != 0 {
		t.Errorf("lock releases = %d, want 0 (never acquired)", locker.released)
	}
}

func TestTriggerMetricsSyncReleasesLock(t *testing.T) {
	locker := &fakeLocker{}
	svc := NewTaskService(&fakeJobRepo{}, &stubMetricsService{}, &stubUploadService{}, locker)

	if _, err := svc.TriggerTask(context.Background(), consts.TaskTypeMetricsSync); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if locker.acquired != 1 || locker.released != 1 {
		t.Errorf("lock acquire/release = %d/%d, want 1/1", locker.acquired, locker.released)
	}
}
