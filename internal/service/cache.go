package service

import (
	"Tripmate/internal/pkg/consts"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// Cache 服务层依赖的缓存能力，由 redis.Store 实现
type Cache interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeleteKey(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...interface{}) error
}

// getOrLoad 先读缓存，未命中时回源并写回，nil 结果不缓存
func getOrLoad[T any](ctx context.Context, cache Cache, key string, ttl time.Duration, load func() (*T, error)) (*T, error) {
	if cache != nil {
		if val, err := cache.GetValue(ctx, key); err == nil && val != "" {
			var cached T
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	res, err := load()
	if err != nil || res == nil {
		return res, err
	}

	if cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := cache.SetWithExpiration(ctx, key, string(b), ttl); err != nil {
				log.WarnContext(ctx, "cache set failed", "key", key, "err", err)
			}
		}
	}
	return res, nil
}

// markDirty 标记景点需要同步到搜索索引
func markDirty(ctx context.Context, cache Cache, placeIDs ...uint64) {
	if cache == nil || len(placeIDs) == 0 {
		return
	}
	members := make([]interface{}, len(placeIDs))
	for i, id := range placeIDs {
		members[i] = id
	}
	if err := cache.SAdd(ctx, consts.PlaceDirtyKey, members...); err != nil {
		log.WarnContext(ctx, "mark place dirty failed", "place_ids", placeIDs, "err", err)
	}
}
