package repository

import (
	"SimPulse/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type VideoRepo interface {
	Create(ctx context.Context, video *model.Video) error
	// GetByID 按主键查找并预加载模拟信息，无则返回 nil
	GetByID(ctx context.Context, id uint64) (*model.Video, error)
	// ListGeneratedSince 列出 since 之后生成且尚未进入发布流程的视频
	ListGeneratedSince(ctx context.Context, since time.Time) ([]*model.Video, error)
	// UpdateAnalysis 写回评分结果与建议文案
	UpdateAnalysis(ctx context.Context, id uint64, score float64, title string, description string) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	CountAll(ctx context.Context) (int64, error)
}

type videoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepo {
	return &videoRepoImpl{db: db}
}

func (r *videoRepoImpl) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Simulation").First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepoImpl) ListGeneratedSince(ctx context.Context, since time.Time) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	result := r.db.WithContext(ctx).
		Preload("Simulation").
		Where("status = ? AND created_at >= ?", "generated", since).
		Find(&videos)
	if result.Error != nil {
		return nil, result.Error
	}
	return videos, nil
}

func (r *videoRepoImpl) UpdateAnalysis(ctx context.Context, id uint64, score float64, title string, description string) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_score":    score,
			"title":       title,
			"description": description,
		}).Error
}

func (r *videoRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *videoRepoImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Count(&count).Error
	return count, err
}
