package util

import (
	"testing"
	"time"
)

func TestStartOfHourUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2026, 3, 10, 19, 45, 30, 123, loc) // 11:45:30 UTC
	got := StartOfHourUTC(in)

	want := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfHourUTC = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}

func TestHourBucketOf(t *testing.T) {
	in := time.Date(2026, 3, 10, 11, 59, 59, 0, time.UTC)
	year, dayOfYear, hour := HourBucketOf(in)

	if year != 2026 || dayOfYear != 69 || hour != 11 {
		t.Errorf("HourBucketOf = (%d,%d,%d), want (2026,69,11)", year, dayOfYear, hour)
	}
}

func TestHourBucketOfCrossesDayInUTC(t *testing.T) {
	// 本地时区的 10 日早晨可能还是 UTC 的 9 日，桶坐标必须按 UTC 算
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2026, 3, 10, 6, 30, 0, 0, loc) // 2026-03-09 22:30 UTC

	_, dayOfYear, hour := HourBucketOf(in)
	if dayOfYear != 68 || hour != 22 {
		t.Errorf("HourBucketOf = (_,%d,%d), want (_,68,22)", dayOfYear, hour)
	}
}

func TestGetMidnightUTC(t *testing.T) {
	in := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	got := GetMidnightUTC(in)

	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("GetMidnightUTC = %v, want %v", got, want)
	}
}
