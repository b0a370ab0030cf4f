package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// LikeRepository 点赞数据访问接口
type LikeRepository interface {
	GetLikeByID(id int) (*model.Like, error)
	GetLikesByContent(contentType model.ContentType, contentID int) ([]*model.Like, error)
}

type likeRepository struct {
	cache cache.Provider
}

// NewLikeRepository 创建 LikeRepository 实例
func NewLikeRepository(c cache.Provider) LikeRepository {
	return &likeRepository{cache: c}
}

// GetLikeByID 按 id 获取点赞记录，未找到返回 nil
func (r *likeRepository) GetLikeByID(id int) (*model.Like, error) {
	rec := findByID(r.cache.Get(cache.LikedContent), id)
	if rec == nil {
		return nil, nil
	}
	return r.buildLikeFromData(rec, id)
}

// GetLikesByContent 获取一条内容的全部点赞
func (r *likeRepository) GetLikesByContent(contentType model.ContentType, contentID int) ([]*model.Like, error) {
	var likes []*model.Like
	for _, rec := range r.cache.Get(cache.LikedContent) {
		if rec.Str("contentType") != string(contentType) || rec.Int("contentId") != contentID {
			continue
		}
		like, err := r.buildLikeFromData(rec, rec.Int("id"))
		if err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, nil
}

func (r *likeRepository) buildLikeFromData(rec cache.Record, id int) (*model.Like, error) {
	contentType, err := model.ParseContentType(rec.Str("contentType"))
	if err != nil {
		return nil, err
	}
	return &model.Like{
		ID:          id,
		ContentType: contentType,
		ContentID:   rec.Int("contentId"),
		MemberID:    rec.Int64("memberId"),
		LikedAt:     rec.Time("likedAt"),
	}, nil
}
