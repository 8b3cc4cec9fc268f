package dto

import "time"

// CreateSimulationDTO 手工登记模拟
type CreateSimulationDTO struct {
	Name       string             `json:"name" binding:"required,max=128"`
	Type       string             `json:"type" binding:"required,max=64"`
	Parameters map[string]float64 `json:"parameters" binding:"required"`
}

// SimulationVideoDTO 模拟下属视频
type SimulationVideoDTO struct {
	ID      uint64       `json:"id"`
	Title   string       `json:"title"`
	AiScore *float64     `json:"aiScore"`
	Status  string       `json:"status"`
	Uploads []*UploadDTO `json:"uploads"`
}

// UploadDTO 发布记录
type UploadDTO struct {
	ID         uint64    `json:"id"`
	Platform   string    `json:"platform"`
	PlatformID string    `json:"platformId"`
	URL        string    `json:"url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SimulationDTO 模拟详情
type SimulationDTO struct {
	ID         uint64                `json:"id"`
	Name       string                `json:"name"`
	Type       string                `json:"type"`
	Parameters string                `json:"parameters"`
	Status     string                `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	Videos     []*SimulationVideoDTO `json:"videos"`
}
