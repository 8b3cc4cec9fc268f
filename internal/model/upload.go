package model

import (
	"time"
)

// Upload 一条视频在一个平台上的一次发布记录。
// 创建后除 Status 外不可变。
type Upload struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	VideoID    uint64    `gorm:"not null;index" json:"videoId"`
	Platform   string    `gorm:"size:32;not null;index" json:"platform"`
	PlatformID string    `gorm:"size:128;column:platform_id" json:"platformId"`
	URL        string    `gorm:"size:512" json:"url"`
	Status     string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	UploadedAt time.Time `gorm:"index" json:"uploadedAt"`
	CreatedAt  time.Time `json:"createdAt"`

	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Upload) TableName() string {
	return "uploads"
}
