package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
)

// FollowService 内容关注领域服务，写路径与点赞相同
type FollowService struct {
	cache cache.Provider
	db    Execer
	stmt  StatementFactory
	km    kmutex.KeyedMutex
}

// NewFollowService 创建 FollowService 实例
func NewFollowService(c cache.Provider, db Execer, stmt StatementFactory) *FollowService {
	return &FollowService{cache: c, db: db, stmt: stmt}
}

func followKey(contentType model.ContentType, contentID int, memberID int64) string {
	return fmt.Sprintf("follow:%s:%d:%d", contentType, contentID, memberID)
}

// IsFollowingContent 成员是否已关注该内容
func (s *FollowService) IsFollowingContent(contentType model.ContentType, contentID int, memberID int64) bool {
	for _, rec := range s.cache.Get(cache.FollowedContent) {
		if rec.Str("contentType") == string(contentType) &&
			rec.Int("contentId") == contentID &&
			rec.Int64("memberId") == memberID {
			return true
		}
	}
	return false
}

// GetTotalFollowers 内容的关注总数
func (s *FollowService) GetTotalFollowers(contentType model.ContentType, contentID int) int {
	total := 0
	for _, rec := range s.cache.Get(cache.FollowedContent) {
		if rec.Str("contentType") == string(contentType) &&
			rec.Int("contentId") == contentID {
			total++
		}
	}
	return total
}

// FollowContent 关注内容，已关注时返回 false 且不产生写入
func (s *FollowService) FollowContent(ctx context.Context, contentType model.ContentType, contentID int, memberID int64) (bool, error) {
	unlock := s.km.Lock(followKey(contentType, contentID, memberID))
	defer unlock()

	if s.IsFollowingContent(contentType, contentID, memberID) {
		return false, nil
	}

	query, values, err := s.stmt().
		InsertInto("followed_content",
			[]string{"contentType", "contentId", "memberId", "followedAt"},
			[]any{string(contentType), contentID, memberID, time.Now().UnixMilli()}).
		Build()
	if err != nil {
		return false, err
	}

	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}
	if err := s.cache.Update(ctx, cache.FollowedContent); err != nil {
		return false, err
	}
	return true, nil
}

// UnfollowContent 取消关注，未关注时返回 false 且不产生写入
func (s *FollowService) UnfollowContent(ctx context.Context, contentType model.ContentType, contentID int, memberID int64) (bool, error) {
	unlock := s.km.Lock(followKey(contentType, contentID, memberID))
	defer unlock()

	if !s.IsFollowingContent(contentType, contentID, memberID) {
		return false, nil
	}

	query, values, err := s.stmt().
		DeleteFrom("followed_content").
		Where("contentType = ?", string(contentType)).
		AndWhere("contentId = ?", contentID).
		AndWhere("memberId = ?", memberID).
		Build()
	if err != nil {
		return false, err
	}

	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}
	if err := s.cache.Update(ctx, cache.FollowedContent); err != nil {
		return false, err
	}
	return true, nil
}
