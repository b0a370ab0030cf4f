package service

import (
	"sort"

	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// TagWithCount 标签与使用次数
type TagWithCount struct {
	Tag   *model.Tag `json:"tag"`
	Count int        `json:"count"`
}

// TagService 标签领域服务，纯读侧
type TagService struct {
	tags   repository.TagRepository
	topics repository.TopicRepository
}

// NewTagService 创建 TagService 实例
func NewTagService(tags repository.TagRepository, topics repository.TopicRepository) *TagService {
	return &TagService{tags: tags, topics: topics}
}

// ListWithCounts 全部标签及主题引用次数，按次数倒序、同次数按标题排序
// forumID 大于 0 时只统计该版块下的主题
func (s *TagService) ListWithCounts(forumID int) ([]*TagWithCount, error) {
	tags, err := s.tags.GetAllTags()
	if err != nil {
		return nil, err
	}

	var topics []*model.Topic
	if forumID > 0 {
		topics, err = s.topics.GetTopicsByForumID(forumID)
	} else {
		topics, err = s.topics.GetAllTopics()
	}
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(tags))
	for _, topic := range topics {
		for _, tagID := range topic.Tags {
			counts[tagID]++
		}
	}

	result := make([]*TagWithCount, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &TagWithCount{Tag: tag, Count: counts[tag.ID]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag.Title < result[j].Tag.Title
	})
	return result, nil
}
