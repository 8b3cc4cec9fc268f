package service

import (
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/util"
	"SimPulse/internal/platform"
	"SimPulse/internal/repository"
	"context"
	"errors"
	"sort"
	"time"
)

// fakeSnapshotRepo 内存版快照仓库，行为对齐 MySQL 实现
type fakeSnapshotRepo struct {
	snaps     []*model.MetricSnapshot
	platforms map[uint64]string // uploadID -> platform，ListSince 过滤用
	nextID    uint64
	now       time.Time // Stats 的"今天"基准
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{
		platforms: make(map[uint64]string),
		now:       time.Now().UTC(),
	}
}

func (r *fakeSnapshotRepo) InTx(_ context.Context, fn func(tx repository.MetricSnapshotRepo) error) error {
	return fn(r)
}

func (r *fakeSnapshotRepo) GetLatestBefore(_ context.Context, uploadID uint64, before time.Time) (*model.MetricSnapshot, error) {
	var latest *model.MetricSnapshot
	for _, s := range r.snaps {
		if s.UploadID != uploadID || !s.Timestamp.Before(before) {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	return latest, nil
}

func (r *fakeSnapshotRepo) GetByBucket(_ context.Context, uploadID uint64, year int, dayOfYear int, hour int) (*model.MetricSnapshot, error) {
	for _, s := range r.snaps {
		if s.UploadID == uploadID && s.Year == year && s.DayOfYear == dayOfYear && s.Hour == hour {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSnapshotRepo) GetLatestForUpload(_ context.Context, uploadID uint64) (*model.MetricSnapshot, error) {
	var latest *model.MetricSnapshot
	for _, s := range r.snaps {
		if s.UploadID != uploadID {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	return latest, nil
}

func (r *fakeSnapshotRepo) Create(_ context.Context, snap *model.MetricSnapshot) error {
	r.nextID++
	snap.ID = r.nextID
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *fakeSnapshotRepo) Update(_ context.Context, snap *model.MetricSnapshot) error {
	for i, s := range r.snaps {
		if s.ID == snap.ID {
			r.snaps[i] = snap
			return nil
		}
	}
	return errors.New("snapshot not found")
}

func (r *fakeSnapshotRepo) ListSince(_ context.Context, since time.Time, platformName string) ([]*model.MetricSnapshot, error) {
	res := make([]*model.MetricSnapshot, 0)
	for _, s := range r.snaps {
		if s.Timestamp.Before(since) {
			continue
		}
		if platformName != "" && r.platforms[s.UploadID] != platformName {
			continue
		}
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.Before(res[j].Timestamp) })
	return res, nil
}

func (r *fakeSnapshotRepo) ListForUploadInRange(_ context.Context, uploadID uint64, from time.Time, to time.Time) ([]*model.MetricSnapshot, error) {
	res := make([]*model.MetricSnapshot, 0)
	for _, s := range r.snaps {
		if s.UploadID != uploadID || s.Timestamp.Before(from) || s.Timestamp.After(to) {
			continue
		}
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.Before(res[j].Timestamp) })
	return res, nil
}

func (r *fakeSnapshotRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	kept := make([]*model.MetricSnapshot, 0, len(r.snaps))
	var deleted int64
	for _, s := range r.snaps {
		if s.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.snaps = kept
	return deleted, nil
}

func (r *fakeSnapshotRepo) Stats(_ context.Context) (*repository.SnapshotStats, error) {
	stats := &repository.SnapshotStats{Total: int64(len(r.snaps))}
	midnight := util.GetMidnightUTC(r.now)
	for _, s := range r.snaps {
		if !s.Timestamp.Before(midnight) {
			stats.Today++
		}
		if stats.Oldest == nil || s.Timestamp.Before(*stats.Oldest) {
			ts := s.Timestamp
			stats.Oldest = &ts
		}
	}
	return stats, nil
}

// fakeUploadRepo 内存版发布记录仓库
type fakeUploadRepo struct {
	uploads []*model.Upload
	nextID  uint64
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{}
}

func (r *fakeUploadRepo) Create(_ context.Context, upload *model.Upload) error {
	r.nextID++
	upload.ID = r.nextID
	r.uploads = append(r.uploads, upload)
	return nil
}

func (r *fakeUploadRepo) GetByID(_ context.Context, id uint64) (*model.Upload, error) {
	for _, u := range r.uploads {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUploadRepo) ListByStatus(_ context.Context, status string) ([]*model.Upload, error) {
	res := make([]*model.Upload, 0)
	for _, u := range r.uploads {
		if u.Status == status {
			res = append(res, u)
		}
	}
	return res, nil
}

func (r *fakeUploadRepo) ListByStatusSince(_ context.Context, status string, since time.Time, platformName string) ([]*model.Upload, error) {
	res := make([]*model.Upload, 0)
	for _, u := range r.uploads {
		if u.Status != status {
			continue
		}
		if !since.IsZero() && u.UploadedAt.Before(since) {
			continue
		}
		if platformName != "" && u.Platform != platformName {
			continue
		}
		res = append(res, u)
	}
	return res, nil
}

func (r *fakeUploadRepo) ListRecent(_ context.Context, limit int) ([]*model.Upload, error) {
	res := make([]*model.Upload, len(r.uploads))
	copy(res, r.uploads)
	sort.Slice(res, func(i, j int) bool { return res[i].UploadedAt.After(res[j].UploadedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *fakeUploadRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.uploads)), nil
}

func (r *fakeUploadRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, u := range r.uploads {
		if !u.UploadedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUploadRepo) CountByPlatform(_ context.Context) ([]*repository.PlatformCount, error) {
	byPlatform := make(map[string]int64)
	order := make([]string, 0)
	for _, u := range r.uploads {
		if _, ok := byPlatform[u.Platform]; !ok {
			order = append(order, u.Platform)
		}
		byPlatform[u.Platform]++
	}
	res := make([]*repository.PlatformCount, 0, len(order))
	for _, name := range order {
		res = append(res, &repository.PlatformCount{Platform: name, Count: byPlatform[name]})
	}
	return res, nil
}

// fakePlatformService 可编程的平台桩
type fakePlatformService struct {
	metrics map[string]platform.VideoMetrics // platformID -> 当前累计读数
	err     error
	calls   int
}

func (s *fakePlatformService) UploadVideo(_ context.Context, _ *platform.UploadRequest) (*platform.UploadResult, error) {
	return nil, errors.New("not implemented")
}

func (s *fakePlatformService) GetVideoMetrics(_ context.Context, platformID string) (*platform.VideoMetrics, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	m := s.metrics[platformID]
	return &m, nil
}

type fakeRegistry struct {
	services map[string]platform.Service
}

func (r *fakeRegistry) Get(name string) (platform.Service, error) {
	svc, ok := r.services[name]
	if !ok {
		return nil, platform.ErrPlatformUnsupported
	}
	return svc, nil
}

func (r *fakeRegistry) Names() []string {
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
