package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/logger"
)

// 设置值类型，对应 settings 表的 type 列
const (
	TypeSerialized = "serialized"
	TypeBool       = "bool"
	TypeNumber     = "number"
	TypeFloat      = "float"
	TypeString     = "string"
)

// Emoticon 表情符号定义，启动时从静态文件读入
type Emoticon struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

var (
	mu        sync.RWMutex
	values    map[string]any
	emoticons []Emoticon
)

// Init 从 settings 集合加载配置表，进程启动后视为只读
// emoticonsFile 为空时跳过表情加载
func Init(provider cache.Provider, emoticonsFile string) error {
	parsed, err := parseCollection(provider.Get(cache.Settings))
	if err != nil {
		return err
	}

	var emos []Emoticon
	if emoticonsFile != "" {
		data, err := os.ReadFile(emoticonsFile)
		if err != nil {
			return fmt.Errorf("failed to read emoticons file: %w", err)
		}
		if err := json.Unmarshal(data, &emos); err != nil {
			return fmt.Errorf("failed to parse emoticons file: %w", err)
		}
	}

	mu.Lock()
	values = parsed
	emoticons = emos
	mu.Unlock()

	logger.Info("settings loaded",
		logger.Int("settings", len(parsed)),
		logger.Int("emoticons", len(emos)))
	return nil
}

func parseCollection(records []cache.Record) (map[string]any, error) {
	parsed := make(map[string]any, len(records))
	for _, r := range records {
		name, _ := r["name"].(string)
		if name == "" {
			continue
		}

		raw := stringValue(r["value"])
		if raw == "" {
			raw = stringValue(r["defaultValue"])
		}

		typ := stringValue(r["type"])
		switch typ {
		case TypeBool:
			parsed[name] = raw == "1" || raw == "true"
		case TypeNumber:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("setting %q: invalid number %q", name, raw)
			}
			parsed[name] = n
		case TypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("setting %q: invalid float %q", name, raw)
			}
			parsed[name] = f
		case TypeSerialized:
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("setting %q: invalid serialized value: %w", name, err)
			}
			parsed[name] = v
		default:
			parsed[name] = raw
		}
	}
	return parsed, nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Get 获取设置值
func Get(name string) any {
	mu.RLock()
	defer mu.RUnlock()
	return values[name]
}

// GetString 获取字符串设置
func GetString(name string) string {
	if v, ok := Get(name).(string); ok {
		return v
	}
	return ""
}

// GetInt 获取整数设置，缺失时返回 fallback
func GetInt(name string, fallback int) int {
	if v, ok := Get(name).(int); ok {
		return v
	}
	return fallback
}

// GetBool 获取布尔设置
func GetBool(name string) bool {
	v, _ := Get(name).(bool)
	return v
}

// Emoticons 获取表情列表
func Emoticons() []Emoticon {
	mu.RLock()
	defer mu.RUnlock()
	return emoticons
}
