package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// SettingRepository 设置行数据访问接口
// 类型化的设置读取走 core/settings；这里只做行级映射，供 mgt 查看用
type SettingRepository interface {
	GetSettingByID(id int) (*model.Setting, error)
	GetSettingByName(name string) (*model.Setting, error)
}

type settingRepository struct {
	cache cache.Provider
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(c cache.Provider) SettingRepository {
	return &settingRepository{cache: c}
}

func (r *settingRepository) GetSettingByID(id int) (*model.Setting, error) {
	rec := findByID(r.cache.Get(cache.Settings), id)
	if rec == nil {
		return nil, nil
	}
	return r.buildSettingFromData(rec, id), nil
}

func (r *settingRepository) GetSettingByName(name string) (*model.Setting, error) {
	for _, rec := range r.cache.Get(cache.Settings) {
		if rec.Str("name") == name {
			return r.buildSettingFromData(rec, rec.Int("id")), nil
		}
	}
	return nil, nil
}

func (r *settingRepository) buildSettingFromData(rec cache.Record, id int) *model.Setting {
	return &model.Setting{
		ID:           id,
		Type:         rec.Str("type"),
		Name:         rec.Str("name"),
		Value:        rec.Str("value"),
		DefaultValue: rec.Str("defaultValue"),
	}
}
