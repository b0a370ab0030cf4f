package cache

import (
	"fmt"
	"strconv"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
)

// 原始记录的列值可能是 string、[]byte、int64、float64 或 nil，
// 以下访问器做防御性标量转换；JSON 列的结构化解码在 repository 层

// Str 字符串列
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int64 整数列
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

// Int 整数列
func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

// Bool 布尔列，按 === 1 语义：1、"1"、true 为真
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v == 1
	case int:
		return v == 1
	case float64:
		return v == 1
	case string:
		return v == "1"
	case []byte:
		return string(v) == "1"
	default:
		return false
	}
}

// Time 毫秒时间戳列，缺失或 0 返回零值
func (r Record) Time(key string) time.Time {
	ms := r.Int64(key)
	if ms == 0 {
		return time.Time{}
	}
	return util.UnixMilliToTime(ms)
}
