package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/core/logger"

	"github.com/redis/go-redis/v9"
)

// Redis 带 Redis 快照镜像的集合缓存
//
// 读写路径与 Memory 完全一致，额外在每次刷新后把集合的 JSON 快照
// 写入 Redis，启动时用 Redis 快照预热内存镜像，减少冷启动的全表加载
// 数据源仍然是数据库，Redis 快照只是加速层
type Redis struct {
	*Memory
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis 创建 Redis 快照缓存
func NewRedis(source Source, rdb *redis.Client, refreshTimeout, snapshotTTL time.Duration) *Redis {
	return &Redis{
		Memory: NewMemory(source, refreshTimeout),
		rdb:    rdb,
		ttl:    snapshotTTL,
	}
}

func snapshotKey(name string) string {
	return "board:collection:" + name
}

// Update 刷新集合，随后尽力镜像快照到 Redis
func (r *Redis) Update(ctx context.Context, name string) error {
	if err := r.Memory.Update(ctx, name); err != nil {
		return err
	}

	records := r.Memory.Get(name)
	data, err := json.Marshal(records)
	if err != nil {
		logger.Warn("snapshot marshal failed",
			logger.String("collection", name),
			logger.ErrorField(err))
		return nil
	}
	if err := r.rdb.Set(ctx, snapshotKey(name), data, r.ttl).Err(); err != nil {
		logger.Warn("snapshot mirror failed",
			logger.String("collection", name),
			logger.ErrorField(err))
	}
	return nil
}

// UpdateAll 依次刷新多个集合
func (r *Redis) UpdateAll(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := r.Update(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Warm 优先用 Redis 快照预热，缺失的集合回源加载
func (r *Redis) Warm(ctx context.Context) error {
	for _, name := range Collections {
		data, err := r.rdb.Get(ctx, snapshotKey(name)).Bytes()
		if err == nil {
			var records []Record
			if err := json.Unmarshal(data, &records); err == nil {
				r.Memory.mu.Lock()
				r.Memory.snapshots[name] = records
				r.Memory.mu.Unlock()
				continue
			}
		}
		if err := r.Update(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
