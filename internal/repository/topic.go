package repository

import (
	"sort"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// TopicRepository 主题数据访问接口
type TopicRepository interface {
	GetTopicByID(id int) (*model.Topic, error)
	GetTopicsByForumID(forumID int) ([]*model.Topic, error)
	GetAllTopics() ([]*model.Topic, error)
}

type topicRepository struct {
	cache cache.Provider
}

// NewTopicRepository 创建 TopicRepository 实例
func NewTopicRepository(c cache.Provider) TopicRepository {
	return &topicRepository{cache: c}
}

// GetTopicByID 按 id 获取主题，未找到返回 nil
func (r *topicRepository) GetTopicByID(id int) (*model.Topic, error) {
	rec := r.loadTopicDataByID(id)
	if rec == nil {
		return nil, nil
	}
	return r.buildTopicFromData(rec, id)
}

// GetTopicsByForumID 获取版块下的全部主题，置顶优先，按最近创建排序
func (r *topicRepository) GetTopicsByForumID(forumID int) ([]*model.Topic, error) {
	var topics []*model.Topic
	for _, rec := range r.cache.Get(cache.Topics) {
		if rec.Int("forumId") != forumID {
			continue
		}
		topic, err := r.buildTopicFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Pinned != topics[j].Pinned {
			return topics[i].Pinned
		}
		return topics[i].CreatedAt.After(topics[j].CreatedAt)
	})
	return topics, nil
}

// GetAllTopics 获取全部主题，不排序
func (r *topicRepository) GetAllTopics() ([]*model.Topic, error) {
	records := r.cache.Get(cache.Topics)
	topics := make([]*model.Topic, 0, len(records))
	for _, rec := range records {
		topic, err := r.buildTopicFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

func (r *topicRepository) loadTopicDataByID(id int) cache.Record {
	return findByID(r.cache.Get(cache.Topics), id)
}

func (r *topicRepository) buildTopicFromData(rec cache.Record, id int) (*model.Topic, error) {
	tags, err := recIntSlice(rec, cache.Topics, "tags", id)
	if err != nil {
		return nil, err
	}

	topic := &model.Topic{
		ID:           id,
		CategoryID:   rec.Int("categoryId"),
		ForumID:      rec.Int("forumId"),
		Title:        rec.Str("title"),
		CreatedBy:    rec.Int64("createdBy"),
		CreatedAt:    rec.Time("createdAt"),
		Locked:       rec.Bool("locked"),
		TotalReplies: rec.Int("totalReplies"),
		TotalViews:   rec.Int("totalViews"),
		LastPostID:   rec.Int("lastPostId"),
		Tags:         tags,
		Pinned:       rec.Bool("pinned"),
	}

	var poll model.Poll
	ok, err := recJSON(rec, cache.Topics, "poll", id, &poll)
	if err != nil {
		return nil, err
	}
	if ok {
		topic.Poll = &poll
	}

	return topic, nil
}
