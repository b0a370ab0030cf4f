package kmutex

import "sync"

// KeyedMutex 按 key 串行化的互斥锁
//
// 用于收紧 "先检查后写入" 的竞态：同一 (contentType, contentId, memberId)
// 的点赞、同一主题的投票在进程内串行执行
// 锁对象常驻不回收，key 空间以活跃内容为界，可接受
type KeyedMutex struct {
	mus sync.Map // key -> *sync.Mutex
}

// Lock 锁住 key，返回解锁函数
func (k *KeyedMutex) Lock(key string) func() {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
