package redis

import (
	"context"
	"time"
)

// Store 将包级函数包装为可注入的缓存实现
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (Store) GetValue(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (Store) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return SetWithExpiration(ctx, key, value, expiration)
}

func (Store) DeleteKey(ctx context.Context, keys ...string) error {
	return DeleteKey(ctx, keys...)
}

func (Store) SAdd(ctx context.Context, key string, members ...interface{}) error {
	return SAdd(ctx, key, members...)
}

func (Store) GetSet(ctx context.Context, key string) ([]string, error) {
	return GetSet(ctx, key)
}

func (Store) Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rename(ctx, oldKey, newKey)
}

func (Store) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	return TryLock(ctx, key, value, expiration, retryTimes)
}

func (Store) UnLock(ctx context.Context, key string, value interface{}) {
	UnLock(ctx, key, value)
}
