package handler

import (
	"SimPulse/internal/pkg/response"
	"SimPulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsSvc service.MetricsService
}

func NewMetricsHandler(metricsSvc service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsSvc: metricsSvc,
	}
}

// GetMetricsOverTime 获取指标增量时序
func (h *MetricsHandler) GetMetricsOverTime(c *gin.Context) {
	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		days = parsed
	}

	metric := c.DefaultQuery("metric", "views")
	platform := c.Query("platform")

	series, err := h.metricsSvc.GetMetricsOverTime(c.Request.Context(), days, platform, metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, series)
}

// GetAggregatedMetrics 获取单条发布记录的聚合指标
func (h *MetricsHandler) GetAggregatedMetrics(c *gin.Context) {
	uploadIDStr := c.Param("upload_id")
	uploadID, err := strconv.ParseUint(uploadIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	timeRange := c.DefaultQuery("range", service.RangeWeek)

	metrics, err := h.metricsSvc.GetAggregatedMetrics(c.Request.Context(), uploadID, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

// GetSnapshotStats 获取快照表诊断统计
func (h *MetricsHandler) GetSnapshotStats(c *gin.Context) {
	stats, err := h.metricsSvc.GetSnapshotStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
