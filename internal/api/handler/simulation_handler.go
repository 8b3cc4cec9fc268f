package handler

import (
	"SimPulse/internal/api/dto"
	"SimPulse/internal/pkg/response"
	"SimPulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SimulationHandler struct {
	simSvc service.SimulationService
}

func NewSimulationHandler(simSvc service.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simSvc: simSvc,
	}
}

// CreateSimulation 手工登记模拟
func (h *SimulationHandler) CreateSimulation(c *gin.Context) {
	var req dto.CreateSimulationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	sim, err := h.simSvc.CreateSimulation(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sim)
}

// GetSimulation 获取模拟详情
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	sim, err := h.simSvc.GetSimulation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sim)
}

// ListSimulations 分页获取模拟列表
func (h *SimulationHandler) ListSimulations(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	sims, err := h.simSvc.ListSimulations(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sims)
}
