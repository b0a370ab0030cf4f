package repository

import (
	"sort"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// PostRepository 帖子数据访问接口
type PostRepository interface {
	GetPostByID(id int) (*model.Post, error)
	GetPostsByTopicID(topicID int) ([]*model.Post, error)
}

type postRepository struct {
	cache cache.Provider
}

// NewPostRepository 创建 PostRepository 实例
func NewPostRepository(c cache.Provider) PostRepository {
	return &postRepository{cache: c}
}

// GetPostByID 按 id 获取帖子，未找到返回 nil
// PostNumber 在这里按创建时间序推导，不读存储值
func (r *postRepository) GetPostByID(id int) (*model.Post, error) {
	rec := r.loadPostDataByID(id)
	if rec == nil {
		return nil, nil
	}
	post, err := r.buildPostFromData(rec, id)
	if err != nil {
		return nil, err
	}
	post.PostNumber = r.postNumber(post.TopicID, id)
	return post, nil
}

// GetPostsByTopicID 获取主题下的全部帖子，按创建时间升序，序号连续
func (r *postRepository) GetPostsByTopicID(topicID int) ([]*model.Post, error) {
	var posts []*model.Post
	for _, rec := range r.cache.Get(cache.Posts) {
		if rec.Int("topicId") != topicID {
			continue
		}
		post, err := r.buildPostFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	for i, post := range posts {
		post.PostNumber = i + 1
	}
	return posts, nil
}

// postNumber 帖子在主题内按 createdAt 排序后的 1 起始位置
func (r *postRepository) postNumber(topicID, postID int) int {
	type entry struct {
		id        int
		createdAt int64
	}
	var entries []entry
	for _, rec := range r.cache.Get(cache.Posts) {
		if rec.Int("topicId") != topicID {
			continue
		}
		entries = append(entries, entry{
			id:        rec.Int("id"),
			createdAt: rec.Int64("createdAt"),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].createdAt < entries[j].createdAt
	})
	for i, e := range entries {
		if e.id == postID {
			return i + 1
		}
	}
	return 0
}

func (r *postRepository) loadPostDataByID(id int) cache.Record {
	return findByID(r.cache.Get(cache.Posts), id)
}

func (r *postRepository) buildPostFromData(rec cache.Record, id int) (*model.Post, error) {
	tags, err := recIntSlice(rec, cache.Posts, "tags", id)
	if err != nil {
		return nil, err
	}
	attachments, err := recIntSlice(rec, cache.Posts, "attachments", id)
	if err != nil {
		return nil, err
	}

	return &model.Post{
		ID:               id,
		CategoryID:       rec.Int("categoryId"),
		ForumID:          rec.Int("forumId"),
		TopicID:          rec.Int("topicId"),
		CreatedBy:        rec.Int64("createdBy"),
		CreatedAt:        rec.Time("createdAt"),
		Content:          rec.Str("content"),
		Tags:             tags,
		Attachments:      attachments,
		IsFirstPost:      rec.Bool("isFirstPost"),
		IPAddress:        rec.Str("ipAddress"),
		Hostname:         rec.Str("hostname"),
		UserAgent:        rec.Str("userAgent"),
		IncludeSignature: rec.Bool("includeSignature"),
	}, nil
}
