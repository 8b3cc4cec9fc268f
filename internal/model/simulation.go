package model

import (
	"time"
)

type Simulation struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Type       string    `gorm:"size:64;not null;index" json:"type"`
	Parameters string    `gorm:"type:json" json:"parameters"`
	Status     string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`

	Videos []*Video `gorm:"foreignKey:SimulationID" json:"videos,omitempty"`
}

func (Simulation) TableName() string {
	return "simulations"
}
