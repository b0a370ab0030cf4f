package cache

import (
	"context"
	"errors"
	"fmt"
)

// Record 原始行记录，列名 -> 未转型的值
// 由 repository 层负责类型转换
type Record map[string]any

// 缓存集合名，与数据表一一对应，是缓存失效的最小粒度
const (
	Categories         = "categories"
	Forums             = "forums"
	Topics             = "topics"
	Posts              = "posts"
	Members            = "members"
	UserGroups         = "user_groups"
	Tags               = "tags"
	LikedContent       = "liked_content"
	FollowedContent    = "followed_content"
	MemberAttachments  = "member_attachments"
	MemberPhotos       = "member_photos"
	MemberCoverPhotos  = "member_cover_photos"
	Sessions           = "sessions"
	MemberDevices      = "member_devices"
	Registry           = "registry"
	Settings           = "settings"
	ContentTracker     = "content_tracker"
	ContentViewTracker = "content_views_tracker"
	ForumClicks        = "forum_clicks"
	ProfileVisitors    = "profile_visitors"
	ForumPermissions   = "forum_permissions"
)

// Collections 全部已知集合
var Collections = []string{
	Categories, Forums, Topics, Posts, Members, UserGroups, Tags,
	LikedContent, FollowedContent, MemberAttachments, MemberPhotos,
	MemberCoverPhotos, Sessions, MemberDevices, Registry, Settings,
	ContentTracker, ContentViewTracker, ForumClicks, ProfileVisitors,
	ForumPermissions,
}

var knownCollections = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Collections))
	for _, name := range Collections {
		m[name] = struct{}{}
	}
	return m
}()

// Known 判断集合名是否已注册
func Known(name string) bool {
	_, ok := knownCollections[name]
	return ok
}

var ErrUnknownCollection = errors.New("unknown cache collection")

// Source 集合的后端数据来源
type Source interface {
	LoadCollection(ctx context.Context, name string) ([]Record, error)
}

// Provider 进程级集合缓存
//
// Get 是同步读，返回当前已安装的快照，调用方不得修改返回的切片
// Update 从 Source 重新加载并整体替换快照，写路径必须在返回前调用
type Provider interface {
	Get(name string) []Record
	GetAll(names map[string]string) map[string][]Record
	Update(ctx context.Context, name string) error
	UpdateAll(ctx context.Context, names ...string) error
}

func unknownCollection(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
}
