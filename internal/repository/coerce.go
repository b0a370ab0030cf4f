package repository

import (
	"encoding/json"
	"fmt"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
)

// 标量转换统一走 cache.Record 的访问器，这里只保留结构化解码和
// 带默认值的取数，类型的归属在 repository 层而非实体层

func recIntDefault(r cache.Record, key string, fallback int) int {
	if _, ok := r[key]; !ok {
		return fallback
	}
	if r.Str(key) == "" {
		return fallback
	}
	return r.Int(key)
}

// recJSON 解码 JSON 列到 dest
// 列缺失或为空返回 false；内容损坏返回错误而不是静默置空，
// 下游默认非空的 poll/redirect 对象有完整的嵌套结构
func recJSON(r cache.Record, collection, key string, id int, dest any) (bool, error) {
	raw := r.Str(key)
	if raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("%s id %d: malformed %s column: %w", collection, id, key, err)
	}
	return true, nil
}

// recIntSlice 解码 JSON 数组列为 id 列表，缺失返回空
func recIntSlice(r cache.Record, collection, key string, id int) ([]int, error) {
	var ids []int
	ok, err := recJSON(r, collection, key, id, &ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int{}, nil
	}
	return ids, nil
}

// findByID 在集合里按数字 id 查找记录，id 列防御性解析
func findByID(records []cache.Record, id int) cache.Record {
	for _, rec := range records {
		if rec.Int("id") == id {
			return rec
		}
	}
	return nil
}
