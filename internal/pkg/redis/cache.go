package redis

import (
	"context"
	"time"
)

// Cache 查询缓存抽象，以注入方式交给服务层使用
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	DelPrefix(ctx context.Context, prefix string) error
}

type redisCache struct{}

// NewCache 返回基于全局 Redis 客户端的 Cache 实现
func NewCache() Cache {
	return &redisCache{}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (c *redisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return SetWithExpiration(ctx, key, value, expiration)
}

func (c *redisCache) DelPrefix(ctx context.Context, prefix string) error {
	return DeleteByPrefix(ctx, prefix)
}
