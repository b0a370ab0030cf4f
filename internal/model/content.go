package model

import (
	"fmt"
	"time"
)

// ContentType 可点赞/关注的内容类型
type ContentType string

const (
	ContentTopic ContentType = "topic"
	ContentPost  ContentType = "post"
)

var contentTypes = map[string]ContentType{
	"topic": ContentTopic,
	"post":  ContentPost,
}

// ParseContentType 解析内容类型字符串
func ParseContentType(s string) (ContentType, error) {
	if ct, ok := contentTypes[s]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("invalid content type: %q", s)
}

// Like 点赞记录
// (ContentType, ContentID, MemberID) 组合唯一，一个成员对一条内容至多一个赞
type Like struct {
	ID          int         `json:"id"`
	ContentType ContentType `json:"contentType"`
	ContentID   int         `json:"contentId"`
	MemberID    int64       `json:"memberId"`
	LikedAt     time.Time   `json:"likedAt"`
}

// Follow 关注记录，唯一性约束与 Like 相同
type Follow struct {
	ID          int         `json:"id"`
	ContentType ContentType `json:"contentType"`
	ContentID   int         `json:"contentId"`
	MemberID    int64       `json:"memberId"`
	FollowedAt  time.Time   `json:"followedAt"`
}
