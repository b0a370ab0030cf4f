package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetCategoryByID(id int) (*model.Category, error)
	GetAllCategories() ([]*model.Category, error)
}

type categoryRepository struct {
	cache cache.Provider
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(c cache.Provider) CategoryRepository {
	return &categoryRepository{cache: c}
}

// GetCategoryByID 按 id 获取分类，未找到返回 nil
func (r *categoryRepository) GetCategoryByID(id int) (*model.Category, error) {
	rec := r.loadCategoryDataByID(id)
	if rec == nil {
		return nil, nil
	}
	return r.buildCategoryFromData(rec, id)
}

// GetAllCategories 获取全部分类
func (r *categoryRepository) GetAllCategories() ([]*model.Category, error) {
	records := r.cache.Get(cache.Categories)
	categories := make([]*model.Category, 0, len(records))
	for _, rec := range records {
		category, err := r.buildCategoryFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *categoryRepository) loadCategoryDataByID(id int) cache.Record {
	return findByID(r.cache.Get(cache.Categories), id)
}

func (r *categoryRepository) buildCategoryFromData(rec cache.Record, id int) (*model.Category, error) {
	return &model.Category{
		ID:        id,
		Title:     rec.Str("title"),
		SortOrder: rec.Int("sortOrder"),
		CreatedAt: rec.Time("createdAt"),
		Visible:   rec.Bool("visible"),
	}, nil
}
