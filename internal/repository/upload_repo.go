package repository

import (
	"SimPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PlatformCount 平台维度的发布数量
type PlatformCount struct {
	Platform string
	Count    int64
}

type UploadRepo interface {
	Create(ctx context.Context, upload *model.Upload) error
	// GetByID 按主键查找，无则返回 nil
	GetByID(ctx context.Context, id uint64) (*model.Upload, error)
	// ListByStatus 按状态列出发布记录，供采集器遍历 published 全集
	ListByStatus(ctx context.Context, status string) ([]*model.Upload, error)
	// ListByStatusSince 按状态列出 uploadedAt 不早于 since 的发布记录
	ListByStatusSince(ctx context.Context, status string, since time.Time, platform string) ([]*model.Upload, error)
	// ListRecent 按发布时间倒序返回最近的发布记录，预加载视频与模拟信息
	ListRecent(ctx context.Context, limit int) ([]*model.Upload, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByPlatform(ctx context.Context) ([]*PlatformCount, error)
}

type uploadRepoImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepo {
	return &uploadRepoImpl{db: db}
}

func (r *uploadRepoImpl) Create(ctx context.Context, upload *model.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *uploadRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Upload, error) {
	var upload model.Upload
	err := r.db.WithContext(ctx).First(&upload, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepoImpl) ListByStatus(ctx context.Context, status string) ([]*model.Upload, error) {
	uploads := make([]*model.Upload, 0)
	result := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&uploads)
	if result.Error != nil {
		return nil, result.Error
	}
	return uploads, nil
}

func (r *uploadRepoImpl) ListByStatusSince(ctx context.Context, status string, since time.Time, platform string) ([]*model.Upload, error) {
	uploads := make([]*model.Upload, 0)
	query := r.db.WithContext(ctx).
		Preload("Video.Simulation").
		Where("status = ?", status)

	if !since.IsZero() {
		query = query.Where("uploaded_at >= ?", since)
	}
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}

	result := query.Find(&uploads)
	if result.Error != nil {
		return nil, result.Error
	}
	return uploads, nil
}

func (r *uploadRepoImpl) ListRecent(ctx context.Context, limit int) ([]*model.Upload, error) {
	uploads := make([]*model.Upload, 0)
	result := r.db.WithContext(ctx).
		Preload("Video.Simulation").
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&uploads)
	if result.Error != nil {
		return nil, result.Error
	}
	return uploads, nil
}

func (r *uploadRepoImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Upload{}).Count(&count).Error
	return count, err
}

func (r *uploadRepoImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Upload{}).
		Where("uploaded_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *uploadRepoImpl) CountByPlatform(ctx context.Context) ([]*PlatformCount, error) {
	counts := make([]*PlatformCount, 0)
	err := r.db.WithContext(ctx).Model(&model.Upload{}).
		Select("platform", "COUNT(*) AS count").
		Group("platform").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
