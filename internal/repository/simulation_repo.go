package repository

import (
	"SimPulse/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SimulationRepo interface {
	Create(ctx context.Context, sim *model.Simulation) error
	// GetByID 按主键查找并预加载视频与发布记录，无则返回 nil
	GetByID(ctx context.Context, id uint64) (*model.Simulation, error)
	List(ctx context.Context, limit int, offset int) ([]*model.Simulation, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

type simulationRepoImpl struct {
	db *gorm.DB
}

func NewSimulationRepository(db *gorm.DB) SimulationRepo {
	return &simulationRepoImpl{db: db}
}

func (r *simulationRepoImpl) Create(ctx context.Context, sim *model.Simulation) error {
	return r.db.WithContext(ctx).Create(sim).Error
}

func (r *simulationRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Simulation, error) {
	var sim model.Simulation
	err := r.db.WithContext(ctx).
		Preload("Videos.Uploads").
		First(&sim, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sim, nil
}

func (r *simulationRepoImpl) List(ctx context.Context, limit int, offset int) ([]*model.Simulation, error) {
	sims := make([]*model.Simulation, 0)
	result := r.db.WithContext(ctx).
		Preload("Videos.Uploads").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sims)
	if result.Error != nil {
		return nil, result.Error
	}
	return sims, nil
}

func (r *simulationRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Simulation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
