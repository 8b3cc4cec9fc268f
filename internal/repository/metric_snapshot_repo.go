package repository

import (
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SnapshotStats 快照表诊断统计
type SnapshotStats struct {
	Total  int64
	Today  int64
	Oldest *time.Time
}

type MetricSnapshotRepo interface {
	// InTx 在单条事务中执行 fn，fn 收到绑定事务的仓库实例。
	// 采集路径的基线读取与快照写入必须在同一事务内。
	InTx(ctx context.Context, fn func(tx MetricSnapshotRepo) error) error
	// GetLatestBefore 获取指定时间前最近的一条快照（计算增量的基线），无则返回 nil
	GetLatestBefore(ctx context.Context, uploadID uint64, before time.Time) (*model.MetricSnapshot, error)
	// GetByBucket 按桶坐标查找快照，无则返回 nil
	GetByBucket(ctx context.Context, uploadID uint64, year int, dayOfYear int, hour int) (*model.MetricSnapshot, error)
	// GetLatestForUpload 获取一条发布记录的最新快照，无则返回 nil
	GetLatestForUpload(ctx context.Context, uploadID uint64) (*model.MetricSnapshot, error)
	Create(ctx context.Context, snap *model.MetricSnapshot) error
	Update(ctx context.Context, snap *model.MetricSnapshot) error
	// ListSince 按采集时间升序返回窗口内全部快照，platform 为空时不过滤平台
	ListSince(ctx context.Context, since time.Time, platform string) ([]*model.MetricSnapshot, error)
	// ListForUploadInRange 按采集时间升序返回一条发布记录在窗口内的快照
	ListForUploadInRange(ctx context.Context, uploadID uint64, from time.Time, to time.Time) ([]*model.MetricSnapshot, error)
	// DeleteOlderThan 删除采集时间早于 cutoff 的快照，返回删除行数
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context) (*SnapshotStats, error)
}

type metricSnapshotRepoImpl struct {
	db *gorm.DB
}

func NewMetricSnapshotRepository(db *gorm.DB) MetricSnapshotRepo {
	return &metricSnapshotRepoImpl{db: db}
}

func (r *metricSnapshotRepoImpl) InTx(ctx context.Context, fn func(tx MetricSnapshotRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&metricSnapshotRepoImpl{db: tx})
	})
}

func (r *metricSnapshotRepoImpl) GetLatestBefore(ctx context.Context, uploadID uint64, before time.Time) (*model.MetricSnapshot, error) {
	var snap model.MetricSnapshot
	err := r.db.WithContext(ctx).
		Where("upload_id = ? AND timestamp < ?", uploadID, before).
		Order("timestamp DESC").
		First(&snap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (r *metricSnapshotRepoImpl) GetByBucket(ctx context.Context, uploadID uint64, year int, dayOfYear int, hour int) (*model.MetricSnapshot, error) {
	var snap model.MetricSnapshot
	err := r.db.WithContext(ctx).
		Where("upload_id = ? AND year = ? AND day_of_year = ? AND hour = ?", uploadID, year, dayOfYear, hour).
		First(&snap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (r *metricSnapshotRepoImpl) GetLatestForUpload(ctx context.Context, uploadID uint64) (*model.MetricSnapshot, error) {
	var snap model.MetricSnapshot
	err := r.db.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("timestamp DESC").
		First(&snap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (r *metricSnapshotRepoImpl) Create(ctx context.Context, snap *model.MetricSnapshot) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

func (r *metricSnapshotRepoImpl) Update(ctx context.Context, snap *model.MetricSnapshot) error {
	return r.db.WithContext(ctx).Save(snap).Error
}

func (r *metricSnapshotRepoImpl) ListSince(ctx context.Context, since time.Time, platform string) ([]*model.MetricSnapshot, error) {
	snaps := make([]*model.MetricSnapshot, 0)
	query := r.db.WithContext(ctx).
		Model(&model.MetricSnapshot{}).
		Where("metric_snapshots.timestamp >= ?", since)

	if platform != "" {
		query = query.
			Joins("JOIN uploads ON uploads.id = metric_snapshots.upload_id").
			Where("uploads.platform = ?", platform)
	}

	result := query.Order("metric_snapshots.timestamp ASC").Find(&snaps)
	if result.Error != nil {
		return nil, result.Error
	}
	return snaps, nil
}

func (r *metricSnapshotRepoImpl) ListForUploadInRange(ctx context.Context, uploadID uint64, from time.Time, to time.Time) ([]*model.MetricSnapshot, error) {
	snaps := make([]*model.MetricSnapshot, 0)
	result := r.db.WithContext(ctx).
		Where("upload_id = ? AND timestamp >= ? AND timestamp <= ?", uploadID, from, to).
		Order("timestamp ASC").
		Find(&snaps)
	if result.Error != nil {
		return nil, result.Error
	}
	return snaps, nil
}

func (r *metricSnapshotRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.MetricSnapshot{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *metricSnapshotRepoImpl) Stats(ctx context.Context) (*SnapshotStats, error) {
	stats := &SnapshotStats{}

	if err := r.db.WithContext(ctx).Model(&model.MetricSnapshot{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	midnight := util.GetMidnightUTC(time.Now())
	if err := r.db.WithContext(ctx).Model(&model.MetricSnapshot{}).
		Where("timestamp >= ?", midnight).
		Count(&stats.Today).Error; err != nil {
		return nil, err
	}

	var oldest model.MetricSnapshot
	err := r.db.WithContext(ctx).Order("timestamp ASC").First(&oldest).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		stats.Oldest = &oldest.Timestamp
	}

	return stats, nil
}
