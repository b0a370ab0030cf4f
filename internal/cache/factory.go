package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/core/config"
	"github.com/samwilcox/nextboard-sub000/internal/core/logger"

	"github.com/redis/go-redis/v9"
)

var (
	provider Provider
	once     sync.Once
)

// New 按配置创建集合缓存，未知的 provider 名直接报错
func New(cfg *config.CacheConfig, source Source, rdb *redis.Client) (Provider, error) {
	refreshTimeout := time.Duration(cfg.RefreshTimeout) * time.Second

	switch cfg.Provider {
	case "memory":
		return NewMemory(source, refreshTimeout), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("cache provider %q requires a redis client", cfg.Provider)
		}
		return NewRedis(source, rdb, refreshTimeout, time.Duration(cfg.SnapshotTTL)*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported cache provider: %q", cfg.Provider)
	}
}

// Init 初始化进程级单例，重复调用返回首次的实例
func Init(cfg *config.CacheConfig, source Source, rdb *redis.Client) error {
	var initErr error
	once.Do(func() {
		p, err := New(cfg, source, rdb)
		if err != nil {
			initErr = err
			return
		}
		provider = p
		logger.Info("cache provider initialized", logger.String("provider", cfg.Provider))
	})
	return initErr
}

// Get 获取缓存单例
func Get() Provider {
	return provider
}
