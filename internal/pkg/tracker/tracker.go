package tracker

import (
	"time"

	"github.com/allegro/bigcache/v3"
)

// Tracker 去重窗口
//
// 记录 "某会话在窗口期内已经计过一次数" 这类标记，用于浏览量与
// 跳转点击的去重。底层是 bigcache 的 []byte 接口，标记本身无内容
type Tracker struct {
	cache *bigcache.BigCache
}

var mark = []byte{1}

// New 创建去重窗口，window 为标记存活时间
func New(window time.Duration) (*Tracker, error) {
	config := bigcache.DefaultConfig(window)
	config.HardMaxCacheSize = 32
	config.MaxEntrySize = 64

	cache, err := bigcache.NewBigCache(config)
	if err != nil {
		return nil, err
	}
	return &Tracker{cache: cache}, nil
}

// Once 首次出现返回 true 并记下标记，窗口期内再次出现返回 false
func (t *Tracker) Once(key string) bool {
	if _, err := t.cache.Get(key); err == nil {
		return false
	}
	t.cache.Set(key, mark)
	return true
}

// Close 关闭底层缓存
func (t *Tracker) Close() error {
	return t.cache.Close()
}
