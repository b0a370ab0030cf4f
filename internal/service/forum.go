package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/apperr"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/tracker"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// ForumNode 版块树节点，计数与最后发帖均含子版块
type ForumNode struct {
	Forum       *model.Forum `json:"forum"`
	TotalTopics int          `json:"totalTopics"`
	TotalPosts  int          `json:"totalPosts"`
	LastPost    *model.Post  `json:"lastPost,omitempty"`
	Children    []*ForumNode `json:"children"`
}

// CategoryNode 分类树节点，children 为该分类下的顶层版块
type CategoryNode struct {
	Category *model.Category `json:"category"`
	Forums   []*ForumNode    `json:"forums"`
}

// ForumService 版块领域服务
type ForumService struct {
	cache      cache.Provider
	db         Execer
	stmt       StatementFactory
	categories repository.CategoryRepository
	forums     repository.ForumRepository
	topics     repository.TopicRepository
	posts      repository.PostRepository
	clicks     *tracker.Tracker
	km         kmutex.KeyedMutex
}

// NewForumService 创建 ForumService 实例
func NewForumService(
	c cache.Provider,
	db Execer,
	stmt StatementFactory,
	categories repository.CategoryRepository,
	forums repository.ForumRepository,
	topics repository.TopicRepository,
	posts repository.PostRepository,
	clicks *tracker.Tracker,
) *ForumService {
	return &ForumService{
		cache:      c,
		db:         db,
		stmt:       stmt,
		categories: categories,
		forums:     forums,
		topics:     topics,
		posts:      posts,
		clicks:     clicks,
	}
}

// GetTotalTopics 版块下的主题总数
func (s *ForumService) GetTotalTopics(forumID int) (int, error) {
	if err := s.requireForum(forumID); err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range s.cache.Get(cache.Topics) {
		if rec.Int("forumId") == forumID {
			total++
		}
	}
	return total, nil
}

// GetTotalPosts 版块下的帖子总数
func (s *ForumService) GetTotalPosts(forumID int) (int, error) {
	if err := s.requireForum(forumID); err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range s.cache.Get(cache.Posts) {
		if rec.Int("forumId") == forumID {
			total++
		}
	}
	return total, nil
}

// GetSubForums 获取直接子版块，按排序值排列
func (s *ForumService) GetSubForums(forumID int) ([]*model.Forum, error) {
	if err := s.requireForum(forumID); err != nil {
		return nil, err
	}
	all, err := s.forums.GetAllForums()
	if err != nil {
		return nil, err
	}
	var children []*model.Forum
	for _, f := range all {
		if f.HasParent && f.ParentID == forumID {
			children = append(children, f)
		}
	}
	sortForums(children)
	return children, nil
}

// GetForumTree 完整的 分类 -> 版块 -> 子版块 树
// 只含可见节点，计数与最后发帖自下而上汇总，父链成环不做检测
func (s *ForumService) GetForumTree() ([]*CategoryNode, error) {
	categories, err := s.categories.GetAllCategories()
	if err != nil {
		return nil, err
	}
	all, err := s.forums.GetAllForums()
	if err != nil {
		return nil, err
	}

	topicCount := make(map[int]int)
	for _, rec := range s.cache.Get(cache.Topics) {
		topicCount[rec.Int("forumId")]++
	}
	postCount := make(map[int]int)
	for _, rec := range s.cache.Get(cache.Posts) {
		postCount[rec.Int("forumId")]++
	}

	byParent := make(map[int][]*model.Forum)
	var roots []*model.Forum
	for _, f := range all {
		if !f.Visible {
			continue
		}
		if f.HasParent {
			byParent[f.ParentID] = append(byParent[f.ParentID], f)
		} else {
			roots = append(roots, f)
		}
	}

	var build func(f *model.Forum) (*ForumNode, error)
	build = func(f *model.Forum) (*ForumNode, error) {
		node := &ForumNode{
			Forum:       f,
			TotalTopics: topicCount[f.ID],
			TotalPosts:  postCount[f.ID],
			Children:    []*ForumNode{},
		}
		if f.LastPostID > 0 {
			last, err := s.posts.GetPostByID(f.LastPostID)
			if err != nil {
				return nil, err
			}
			node.LastPost = last
		}
		children := byParent[f.ID]
		sortForums(children)
		for _, child := range children {
			childNode, err := build(child)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, childNode)
			node.TotalTopics += childNode.TotalTopics
			node.TotalPosts += childNode.TotalPosts
			if childNode.LastPost != nil &&
				(node.LastPost == nil || childNode.LastPost.CreatedAt.After(node.LastPost.CreatedAt)) {
				node.LastPost = childNode.LastPost
			}
		}
		return node, nil
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})

	var tree []*CategoryNode
	for _, category := range categories {
		if !category.Visible {
			continue
		}
		node := &CategoryNode{Category: category, Forums: []*ForumNode{}}
		var tops []*model.Forum
		for _, f := range roots {
			if f.CategoryID == category.ID {
				tops = append(tops, f)
			}
		}
		sortForums(tops)
		for _, f := range tops {
			forumNode, err := build(f)
			if err != nil {
				return nil, err
			}
			node.Forums = append(node.Forums, forumNode)
		}
		tree = append(tree, node)
	}
	return tree, nil
}

// ResolveRedirect 解析跳转版块的目标地址，非跳转版块报错
func (s *ForumService) ResolveRedirect(forumID int) (string, error) {
	forum, err := s.forums.GetForumByID(forumID)
	if err != nil {
		return "", err
	}
	if forum == nil {
		return "", apperr.ErrForumNotFound
	}
	if !forum.IsRedirect() {
		return "", apperr.ErrNoRedirect
	}
	return forum.Redirect.URL, nil
}

// UpdateRedirectClicks 跳转版块点击计数，同一会话在去重窗口内只计一次
//
// redirect JSON 列整体读改写，另落一条点击明细，最后刷新两个集合
func (s *ForumService) UpdateRedirectClicks(ctx context.Context, forumID int, sessionID string) (bool, error) {
	unlock := s.km.Lock(fmt.Sprintf("forum:redirect:%d", forumID))
	defer unlock()

	forum, err := s.forums.GetForumByID(forumID)
	if err != nil {
		return false, err
	}
	if forum == nil {
		return false, apperr.ErrForumNotFound
	}
	if !forum.IsRedirect() {
		return false, apperr.ErrNoRedirect
	}

	if !s.clicks.Once(fmt.Sprintf("click:forum:%d:%s", forumID, sessionID)) {
		return false, nil
	}

	redirect := *forum.Redirect
	redirect.Clicks++
	raw, err := json.Marshal(&redirect)
	if err != nil {
		return false, err
	}

	query, values, err := s.stmt().
		Update("forums").
		Set([]string{"redirect"}, []any{string(raw)}).
		Where("id = ?", forumID).
		Build()
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}

	query, values, err = s.stmt().
		InsertInto("forum_clicks",
			[]string{"forumId", "sessionId", "clickedAt"},
			[]any{forumID, sessionID, time.Now().UnixMilli()}).
		Build()
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}

	if err := s.cache.UpdateAll(ctx, cache.Forums, cache.ForumClicks); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ForumService) requireForum(forumID int) error {
	forum, err := s.forums.GetForumByID(forumID)
	if err != nil {
		return err
	}
	if forum == nil {
		return apperr.ErrForumNotFound
	}
	return nil
}

func sortForums(forums []*model.Forum) {
	sort.SliceStable(forums, func(i, j int) bool {
		return forums[i].SortOrder < forums[j].SortOrder
	})
}
