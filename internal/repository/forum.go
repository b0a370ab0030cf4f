package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// ForumRepository 版块数据访问接口
type ForumRepository interface {
	GetForumByID(id int) (*model.Forum, error)
	GetForumsByCategoryID(categoryID int) ([]*model.Forum, error)
	GetAllForums() ([]*model.Forum, error)
}

type forumRepository struct {
	cache cache.Provider
}

// NewForumRepository 创建 ForumRepository 实例
func NewForumRepository(c cache.Provider) ForumRepository {
	return &forumRepository{cache: c}
}

// GetForumByID 按 id 获取版块，未找到返回 nil
func (r *forumRepository) GetForumByID(id int) (*model.Forum, error) {
	rec := r.loadForumDataByID(id)
	if rec == nil {
		return nil, nil
	}
	return r.buildForumFromData(rec, id)
}

// GetForumsByCategoryID 获取分类下的全部版块
func (r *forumRepository) GetForumsByCategoryID(categoryID int) ([]*model.Forum, error) {
	var forums []*model.Forum
	for _, rec := range r.cache.Get(cache.Forums) {
		if rec.Int("categoryId") != categoryID {
			continue
		}
		forum, err := r.buildForumFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		forums = append(forums, forum)
	}
	return forums, nil
}

// GetAllForums 获取全部版块
func (r *forumRepository) GetAllForums() ([]*model.Forum, error) {
	records := r.cache.Get(cache.Forums)
	forums := make([]*model.Forum, 0, len(records))
	for _, rec := range records {
		forum, err := r.buildForumFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		forums = append(forums, forum)
	}
	return forums, nil
}

func (r *forumRepository) loadForumDataByID(id int) cache.Record {
	return findByID(r.cache.Get(cache.Forums), id)
}

func (r *forumRepository) buildForumFromData(rec cache.Record, id int) (*model.Forum, error) {
	forum := &model.Forum{
		ID:                  id,
		CategoryID:          rec.Int("categoryId"),
		Title:               rec.Str("title"),
		Description:         rec.Str("description"),
		SortOrder:           rec.Int("sortOrder"),
		CreatedAt:           rec.Time("createdAt"),
		HasParent:           rec.Bool("hasParent"),
		ParentID:            rec.Int("parentId"),
		Visible:             rec.Bool("visible"),
		Archived:            rec.Bool("archived"),
		TotalTopics:         rec.Int("totalTopics"),
		TotalPosts:          rec.Int("totalPosts"),
		LastPostID:          rec.Int("lastPostId"),
		PasswordProtected:   rec.Bool("passwordProtected"),
		HotThreshold:        recIntDefault(rec, "hotThreshold", model.DefaultHotThreshold),
		PopularityThreshold: recIntDefault(rec, "popularityThreshold", model.DefaultPopularityThreshold),
		DefaultFilter:       rec.Str("defaultFilter"),
		PollsEnabled:        rec.Bool("pollsEnabled"),
		MaxPollQuestions:    recIntDefault(rec, "maxPollQuestions", 1),
	}

	var redirect model.Redirect
	ok, err := recJSON(rec, cache.Forums, "redirect", id, &redirect)
	if err != nil {
		return nil, err
	}
	if ok {
		forum.Redirect = &redirect
	}

	return forum, nil
}
