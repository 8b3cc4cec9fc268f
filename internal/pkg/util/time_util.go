package util

import (
	"time"
)

// StartOfHourUTC 计算 UTC 小时桶边界。
// 桶定义统一为 t.UTC().Truncate(time.Hour)，与服务器本地时区无关。
func StartOfHourUTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// HourBucketOf 从小时桶边界导出 (year, dayOfYear, hour) 桶坐标，均按 UTC。
func HourBucketOf(t time.Time) (year int, dayOfYear int, hour int) {
	u := StartOfHourUTC(t)
	return u.Year(), u.YearDay(), u.Hour()
}

// GetMidnightUTC 获取指定时间所在 UTC 日的零点
func GetMidnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
