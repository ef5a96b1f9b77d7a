package job

import (
	"Tripmate/internal/pkg/logger"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DirtyStore dirty 集合的读写能力，由 redis.Store 实现
type DirtyStore interface {
	Rename(ctx context.Context, oldKey string, newKey string) error
	GetSet(ctx context.Context, key string) ([]string, error)
	SAdd(ctx context.Context, key string, members ...interface{}) error
	DeleteKey(ctx context.Context, keys ...string) error
}

// Locker 分布式锁，避免多实例重复执行
type Locker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{})
}

const defaultBatchSize = 500

func jobContext(name string) context.Context {
	traceID := "job-" + name + "-" + uuid.NewString()
	return logger.WithTraceID(context.Background(), traceID)
}

// isNoSuchKey RENAME 源 key 不存在时 redis 返回该错误
func isNoSuchKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such key")
}
