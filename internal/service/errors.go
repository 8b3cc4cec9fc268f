package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUploadNotFound     = errors.New("发布记录不存在")
	ErrSimulationNotFound = errors.New("模拟不存在")
	ErrMetricUnsupported  = errors.New("不支持的指标类型")
	ErrRangeUnsupported   = errors.New("不支持的时间范围")
	ErrTaskTypeUnknown    = errors.New("未知的任务类型")
	ErrCollectRunning     = errors.New("采集任务正在运行")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUploadNotFound:     NotFound,
	ErrSimulationNotFound: NotFound,
	ErrMetricUnsupported:  BadRequest,
	ErrRangeUnsupported:   BadRequest,
	ErrTaskTypeUnknown:    BadRequest,
	ErrCollectRunning:     Conflict,
	UnExpectedError:       InternalServerError,
}
