package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	GetTagByID(id int) (*model.Tag, error)
	GetAllTags() ([]*model.Tag, error)
}

type tagRepository struct {
	cache cache.Provider
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(c cache.Provider) TagRepository {
	return &tagRepository{cache: c}
}

// GetTagByID 按 id 获取标签，未找到返回 nil
func (r *tagRepository) GetTagByID(id int) (*model.Tag, error) {
	rec := findByID(r.cache.Get(cache.Tags), id)
	if rec == nil {
		return nil, nil
	}
	return r.buildTagFromData(rec, id)
}

// GetAllTags 获取全部标签
func (r *tagRepository) GetAllTags() ([]*model.Tag, error) {
	records := r.cache.Get(cache.Tags)
	tags := make([]*model.Tag, 0, len(records))
	for _, rec := range records {
		tag, err := r.buildTagFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *tagRepository) buildTagFromData(rec cache.Record, id int) (*model.Tag, error) {
	return &model.Tag{
		ID:        id,
		Title:     rec.Str("title"),
		CreatedBy: rec.Int64("createdBy"),
		CreatedAt: rec.Time("createdAt"),
	}, nil
}
