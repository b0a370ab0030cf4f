package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/apperr"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/tracker"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// HotStatus 主题热度判定结果，阈值来自所属版块
type HotStatus struct {
	Hot       bool `json:"hot"`
	Threshold int  `json:"threshold"`
}

// PopularityStatus 主题人气判定结果
type PopularityStatus struct {
	Popular   bool `json:"popular"`
	Threshold int  `json:"threshold"`
}

// TopicService 主题领域服务
type TopicService struct {
	cache  cache.Provider
	db     Execer
	stmt   StatementFactory
	topics repository.TopicRepository
	forums repository.ForumRepository
	posts  repository.PostRepository
	views  *tracker.Tracker
	km     kmutex.KeyedMutex
}

// NewTopicService 创建 TopicService 实例
func NewTopicService(
	c cache.Provider,
	db Execer,
	stmt StatementFactory,
	topics repository.TopicRepository,
	forums repository.ForumRepository,
	posts repository.PostRepository,
	views *tracker.Tracker,
) *TopicService {
	return &TopicService{
		cache:  c,
		db:     db,
		stmt:   stmt,
		topics: topics,
		forums: forums,
		posts:  posts,
		views:  views,
	}
}

// GetHotStatus 按所属版块阈值判定主题是否为热门
// 回复数达到阈值即算热门，恰好等于阈值也算
func (s *TopicService) GetHotStatus(topicID int) (*HotStatus, error) {
	topic, forum, err := s.topicWithForum(topicID)
	if err != nil {
		return nil, err
	}
	return &HotStatus{
		Hot:       topic.TotalReplies >= forum.HotThreshold,
		Threshold: forum.HotThreshold,
	}, nil
}

// GetPopularityStatus 按浏览量判定主题是否为高人气
func (s *TopicService) GetPopularityStatus(topicID int) (*PopularityStatus, error) {
	topic, forum, err := s.topicWithForum(topicID)
	if err != nil {
		return nil, err
	}
	return &PopularityStatus{
		Popular:   topic.TotalViews >= forum.PopularityThreshold,
		Threshold: forum.PopularityThreshold,
	}, nil
}

// GetTotalPosts 主题内的帖子总数
func (s *TopicService) GetTotalPosts(topicID int) (int, error) {
	topic, err := s.topics.GetTopicByID(topicID)
	if err != nil {
		return 0, err
	}
	if topic == nil {
		return 0, apperr.ErrTopicNotFound
	}
	posts, err := s.posts.GetPostsByTopicID(topicID)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// IncrementViews 浏览量计数
//
// 同一会话在去重窗口内只计一次，重复浏览直接返回 false
// 计数时同时落一条浏览追踪记录，再刷新两个集合
func (s *TopicService) IncrementViews(ctx context.Context, topicID int, sessionID string) (bool, error) {
	topic, err := s.topics.GetTopicByID(topicID)
	if err != nil {
		return false, err
	}
	if topic == nil {
		return false, apperr.ErrTopicNotFound
	}

	if !s.views.Once(fmt.Sprintf("view:topic:%d:%s", topicID, sessionID)) {
		return false, nil
	}

	query, values, err := s.stmt().
		Update("topics").
		SetExpr("totalViews = totalViews + 1").
		Where("id = ?", topicID).
		Build()
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}

	query, values, err = s.stmt().
		InsertInto("content_views_tracker",
			[]string{"contentType", "contentId", "sessionId", "viewedAt"},
			[]any{string(model.ContentTopic), topicID, sessionID, time.Now().UnixMilli()}).
		Build()
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}

	if err := s.cache.UpdateAll(ctx, cache.Topics, cache.ContentViewTracker); err != nil {
		return false, err
	}
	return true, nil
}

// CreatePost 在主题下发帖
//
// 主题锁定时拒绝；写入帖子后同步维护主题与版块的统计列，
// 全部写入完成后一次性刷新受影响的集合
func (s *TopicService) CreatePost(ctx context.Context, topicID int, memberID int64, content string) (*model.Post, error) {
	unlock := s.km.Lock(fmt.Sprintf("topic:post:%d", topicID))
	defer unlock()

	topic, forum, err := s.topicWithForum(topicID)
	if err != nil {
		return nil, err
	}
	if topic.Locked {
		return nil, apperr.NewAppError(apperr.CodeForbidden, "topic is locked")
	}

	now := time.Now()
	query, values, err := s.stmt().
		InsertInto("posts",
			[]string{"categoryId", "forumId", "topicId", "createdBy", "createdAt", "content", "isFirstPost"},
			[]any{topic.CategoryID, topic.ForumID, topicID, memberID, now.UnixMilli(), content, 0}).
		Build()
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(ctx, statement(query, values))
	if err != nil {
		return nil, err
	}
	postID := int(result.InsertID)

	query, values, err = s.stmt().
		Update("topics").
		SetExpr("totalReplies = totalReplies + 1").
		SetExpr("lastPostId = ?", postID).
		Where("id = ?", topicID).
		Build()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return nil, err
	}

	query, values, err = s.stmt().
		Update("forums").
		SetExpr("totalPosts = totalPosts + 1").
		SetExpr("lastPostId = ?", postID).
		Where("id = ?", forum.ID).
		Build()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return nil, err
	}

	if err := s.cache.UpdateAll(ctx, cache.Posts, cache.Topics, cache.Forums); err != nil {
		return nil, err
	}
	return s.posts.GetPostByID(postID)
}

func (s *TopicService) topicWithForum(topicID int) (*model.Topic, *model.Forum, error) {
	topic, err := s.topics.GetTopicByID(topicID)
	if err != nil {
		return nil, nil, err
	}
	if topic == nil {
		return nil, nil, apperr.ErrTopicNotFound
	}
	forum, err := s.forums.GetForumByID(topic.ForumID)
	if err != nil {
		return nil, nil, err
	}
	if forum == nil {
		return nil, nil, apperr.ErrForumNotFound
	}
	return topic, forum, nil
}
