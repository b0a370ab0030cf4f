package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// GroupRepository 用户组数据访问接口
type GroupRepository interface {
	GetGroupByID(id int) (*model.Group, error)
}

type groupRepository struct {
	cache cache.Provider
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(c cache.Provider) GroupRepository {
	return &groupRepository{cache: c}
}

// GetGroupByID 按 id 获取用户组，未找到返回 nil
func (r *groupRepository) GetGroupByID(id int) (*model.Group, error) {
	rec := findByID(r.cache.Get(cache.UserGroups), id)
	if rec == nil {
		return nil, nil
	}
	return r.buildGroupFromData(rec, id)
}

func (r *groupRepository) buildGroupFromData(rec cache.Record, id int) (*model.Group, error) {
	return &model.Group{
		ID:          id,
		Name:        rec.Str("name"),
		Color:       rec.Str("color"),
		Emphasize:   rec.Bool("emphasize"),
		IsModerator: rec.Bool("isModerator"),
		IsAdmin:     rec.Bool("isAdmin"),
		SortOrder:   rec.Int("sortOrder"),
		Display:     rec.Bool("display"),
	}, nil
}
