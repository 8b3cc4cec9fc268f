package model

import (
	"time"
)

type Video struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	SimulationID uint64    `gorm:"not null;index" json:"simulationId"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ObjectKey    string    `gorm:"size:255" json:"objectKey"`
	PreviewKey   string    `gorm:"size:255" json:"previewKey"`
	Duration     int       `gorm:"not null;default:0" json:"duration"`
	AiScore      *float64  `json:"aiScore"`
	Status       string    `gorm:"size:16;not null;default:generated;index" json:"status"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`

	Simulation *Simulation `gorm:"foreignKey:SimulationID" json:"simulation,omitempty"`
	Uploads    []*Upload   `gorm:"foreignKey:VideoID" json:"uploads,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
