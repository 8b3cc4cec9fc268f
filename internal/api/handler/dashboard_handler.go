package handler

import (
	"SimPulse/internal/pkg/response"
	"SimPulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
	uploadSvc    service.UploadService
}

func NewDashboardHandler(dashboardSvc service.DashboardService, uploadSvc service.UploadService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		uploadSvc:    uploadSvc,
	}
}

// GetStats 获取仪表盘总览
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetRecentUploads 获取最近发布列表
func (h *DashboardHandler) GetRecentUploads(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	uploads, err := h.uploadSvc.GetRecentUploads(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, uploads)
}

// GetTopVideos 获取表现最好的发布记录
func (h *DashboardHandler) GetTopVideos(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	videos, err := h.uploadSvc.GetTopVideos(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, videos)
}

// GetPlatformComparison 获取平台横向对比
func (h *DashboardHandler) GetPlatformComparison(c *gin.Context) {
	comparison, err := h.dashboardSvc.GetPlatformComparison(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comparison)
}
