package model

import (
	"time"
)

// MetricSnapshot 单条发布记录在一个 UTC 小时桶内的指标读数。
// (upload_id, year, day_of_year, hour) 唯一，同一小时内重复采集为原地更新。
// 累计值来自平台接口；Delta 为相对基线的增量，写入时预计算。
// Delta 列可空：空值表示写入早于增量预计算上线，查询引擎对其走回退路径。
type MetricSnapshot struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UploadID  uint64    `gorm:"not null;index:idx_upload_bucket,unique;index:idx_upload_ts" json:"uploadId"`
	Year      int       `gorm:"not null;index:idx_upload_bucket,unique" json:"year"`
	DayOfYear int       `gorm:"not null;index:idx_upload_bucket,unique;column:day_of_year" json:"dayOfYear"`
	Hour      int       `gorm:"not null;index:idx_upload_bucket,unique" json:"hour"`
	Timestamp time.Time `gorm:"not null;index:idx_upload_ts;index" json:"timestamp"`

	Views    int `gorm:"not null;default:0" json:"views"`
	Likes    int `gorm:"not null;default:0" json:"likes"`
	Comments int `gorm:"not null;default:0" json:"comments"`
	Shares   int `gorm:"not null;default:0" json:"shares"`

	ViewsDelta    *int `json:"viewsDelta"`
	LikesDelta    *int `json:"likesDelta"`
	CommentsDelta *int `json:"commentsDelta"`
	SharesDelta   *int `json:"sharesDelta"`

	CreatedAt time.Time `json:"createdAt"`

	Upload *Upload `gorm:"foreignKey:UploadID" json:"-"`
}

func (MetricSnapshot) TableName() string {
	return "metric_snapshots"
}
