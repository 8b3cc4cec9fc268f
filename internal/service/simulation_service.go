package service

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/model"
	"SimPulse/internal/pkg/consts"
	"SimPulse/internal/repository"
	"context"
	"slices"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type SimulationService interface {
	// CreateSimulation 手工登记一个待生成的模拟
	CreateSimulation(ctx context.Context, req *dto.CreateSimulationDTO) (*dto.SimulationDTO, error)
	// GetSimulation 返回模拟详情，含视频与发布记录
	GetSimulation(ctx context.Context, id uint64) (*dto.SimulationDTO, error)
	// ListSimulations 分页列出模拟
	ListSimulations(ctx context.Context, limit int, offset int) ([]*dto.SimulationDTO, error)
}

type simulationServiceImpl struct {
	simRepo repository.SimulationRepo
}

func NewSimulationService(simRepo repository.SimulationRepo) SimulationService {
	return &simulationServiceImpl{simRepo: simRepo}
}

func (s *simulationServiceImpl) CreateSimulation(ctx context.Context, req *dto.CreateSimulationDTO) (*dto.SimulationDTO, error) {
	if !slices.Contains(consts.SimulationTypes, req.Type) {
		return nil, ErrParamInvalid
	}

	paramsJSON, err := json.Marshal(req.Parameters)
	if err != nil {
		return nil, ErrParamInvalid
	}

	sim := &model.Simulation{
		Name:       req.Name,
		Type:       req.Type,
		Parameters: string(paramsJSON),
		Status:     consts.SimulationStatusPending,
	}
	if err = s.simRepo.Create(ctx, sim); err != nil {
		return nil, err
	}
	return toSimulationDTO(sim)
}

func (s *simulationServiceImpl) GetSimulation(ctx context.Context, id uint64) (*dto.SimulationDTO, error) {
	sim, err := s.simRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, ErrSimulationNotFound
	}
	return toSimulationDTO(sim)
}

func (s *simulationServiceImpl) ListSimulations(ctx context.Context, limit int, offset int) ([]*dto.SimulationDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	sims, err := s.simRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SimulationDTO, 0, len(sims))
	for _, sim := range sims {
		item, err := toSimulationDTO(sim)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func toSimulationDTO(sim *model.Simulation) (*dto.SimulationDTO, error) {
	var res dto.SimulationDTO
	if err := copier.Copy(&res, sim); err != nil {
		return nil, err
	}
	if res.Videos == nil {
		res.Videos = make([]*dto.SimulationVideoDTO, 0)
	}
	return &res, nil
}
