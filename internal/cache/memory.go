package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Memory 内存集合缓存
//
// 快照整体替换：Get 拿到的是替换前或替换后的完整快照，不会读到中间状态
// 刷新失败时保留旧快照（fail-open），错误交由调用方处理
type Memory struct {
	source         Source
	refreshTimeout time.Duration

	mu        sync.RWMutex
	snapshots map[string][]Record

	sf singleflight.Group
}

// NewMemory 创建内存缓存
// refreshTimeout 为单个集合刷新的超时时间，0 表示不限制
func NewMemory(source Source, refreshTimeout time.Duration) *Memory {
	return &Memory{
		source:         source,
		refreshTimeout: refreshTimeout,
		snapshots:      make(map[string][]Record, len(Collections)),
	}
}

// Get 返回集合当前快照，未知或未加载的集合返回空切片
func (m *Memory) Get(name string) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if records, ok := m.snapshots[name]; ok {
		return records
	}
	return []Record{}
}

// GetAll 批量读取，alias -> 集合名
func (m *Memory) GetAll(names map[string]string) map[string][]Record {
	result := make(map[string][]Record, len(names))
	for alias, name := range names {
		result[alias] = m.Get(name)
	}
	return result
}

// Update 从 Source 重新加载集合并替换快照
// 并发刷新同一集合时合并为一次加载
func (m *Memory) Update(ctx context.Context, name string) error {
	if !Known(name) {
		return unknownCollection(name)
	}

	_, err, _ := m.sf.Do(name, func() (any, error) {
		loadCtx := ctx
		if m.refreshTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(ctx, m.refreshTimeout)
			defer cancel()
		}

		records, err := m.source.LoadCollection(loadCtx, name)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []Record{}
		}

		m.mu.Lock()
		m.snapshots[name] = records
		m.mu.Unlock()
		return nil, nil
	})
	return err
}

// UpdateAll 依次刷新多个集合，遇到错误立即返回
func (m *Memory) UpdateAll(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := m.Update(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Warm 预热全部已知集合
func (m *Memory) Warm(ctx context.Context) error {
	return m.UpdateAll(ctx, Collections...)
}
