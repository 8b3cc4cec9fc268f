package redis

import (
	"context"
	"time"
)

// Locker 分布式互斥锁，供采集路径注入，便于测试
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	UnLock(ctx context.Context, key string, value string)
}

type redisLocker struct{}

// NewLocker 返回基于全局客户端的 Locker，单次尝试不重试
func NewLocker() Locker {
	return &redisLocker{}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	return TryLock(ctx, key, value, expiration, 0)
}

func (l *redisLocker) UnLock(ctx context.Context, key string, value string) {
	UnLock(ctx, key, value)
}
