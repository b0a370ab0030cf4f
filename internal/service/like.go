package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
)

// LikeService 点赞领域服务
//
// 读侧每次调用都对 liked_content 集合重新过滤，不做记忆化
// 写侧遵循固定序：查缓存判前置条件 -> 建语句 -> 执行 -> 等待集合刷新
type LikeService struct {
	cache cache.Provider
	db    Execer
	stmt  StatementFactory
	km    kmutex.KeyedMutex
}

// NewLikeService 创建 LikeService 实例
func NewLikeService(c cache.Provider, db Execer, stmt StatementFactory) *LikeService {
	return &LikeService{cache: c, db: db, stmt: stmt}
}

func likeKey(contentType model.ContentType, contentID int, memberID int64) string {
	return fmt.Sprintf("like:%s:%d:%d", contentType, contentID, memberID)
}

// HasLikedContent 成员是否已点赞该内容
func (s *LikeService) HasLikedContent(contentType model.ContentType, contentID int, memberID int64) bool {
	for _, rec := range s.cache.Get(cache.LikedContent) {
		if rec.Str("contentType") == string(contentType) &&
			rec.Int("contentId") == contentID &&
			rec.Int64("memberId") == memberID {
			return true
		}
	}
	return false
}

// GetTotalLikes 内容的点赞总数
func (s *LikeService) GetTotalLikes(contentType model.ContentType, contentID int) int {
	total := 0
	for _, rec := range s.cache.Get(cache.LikedContent) {
		if rec.Str("contentType") == string(contentType) &&
			rec.Int("contentId") == contentID {
			total++
		}
	}
	return total
}

// LikeContent 点赞，已点赞时返回 false 且不产生写入
func (s *LikeService) LikeContent(ctx context.Context, contentType model.ContentType, contentID int, memberID int64) (bool, error) {
	unlock := s.km.Lock(likeKey(contentType, contentID, memberID))
	defer unlock()

	if s.HasLikedContent(contentType, contentID, memberID) {
		return false, nil
	}

	query, values, err := s.stmt().
		InsertInto("liked_content",
			[]string{"contentType", "contentId", "memberId", "likedAt"},
			[]any{string(contentType), contentID, memberID, time.Now().UnixMilli()}).
		Build()
	if err != nil {
		return false, err
	}

	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}
	if err := s.cache.Update(ctx, cache.LikedContent); err != nil {
		return false, err
	}
	return true, nil
}

// UnlikeContent 取消点赞，未点赞时返回 false 且不产生写入
func (s *LikeService) UnlikeContent(ctx context.Context, contentType model.ContentType, contentID int, memberID int64) (bool, error) {
	unlock := s.km.Lock(likeKey(contentType, contentID, memberID))
	defer unlock()

	if !s.HasLikedContent(contentType, contentID, memberID) {
		return false, nil
	}

	query, values, err := s.stmt().
		DeleteFrom("liked_content").
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
	if err := s.cache.Update(ctx, cache.LikedContent); err != nil {
		return false, err
	}
	return true, nil
}
