package api

import "SimPulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MetricsHandler    *handler.MetricsHandler
	DashboardHandler  *handler.DashboardHandler
	SimulationHandler *handler.SimulationHandler
	TaskHandler       *handler.TaskHandler
}
