package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// OnlineMember 在线成员条目
type OnlineMember struct {
	MemberID    int64  `json:"memberId"`
	DisplayName string `json:"displayName"`
	Location    string `json:"location"`
	Anonymous   bool   `json:"anonymous"`
}

// WhosOnline 在线统计结果
type WhosOnline struct {
	Members    []*OnlineMember `json:"members"`
	Guests     int             `json:"guests"`
	Bots       []string        `json:"bots"`
	Total      int             `json:"total"`
	MostOnline int             `json:"mostOnline"`
}

// OnlineService 在线状态领域服务
//
// 以会话最后点击时间落在窗口内为在线判定，窗口由配置给出
type OnlineService struct {
	cache    cache.Provider
	db       Execer
	stmt     StatementFactory
	sessions repository.SessionRepository
	members  repository.MemberRepository
	forums   repository.ForumRepository
	topics   repository.TopicRepository
	window   time.Duration
}

// NewOnlineService 创建 OnlineService 实例
func NewOnlineService(
	c cache.Provider,
	db Execer,
	stmt StatementFactory,
	sessions repository.SessionRepository,
	members repository.MemberRepository,
	forums repository.ForumRepository,
	topics repository.TopicRepository,
	window time.Duration,
) *OnlineService {
	return &OnlineService{
		cache:    c,
		db:       db,
		stmt:     stmt,
		sessions: sessions,
		members:  members,
		forums:   forums,
		topics:   topics,
		window:   window,
	}
}

// GetWhosOnline 当前在线的成员、访客数与爬虫
//
// 在线人数创新高时顺带更新注册表里的最高纪录
func (s *OnlineService) GetWhosOnline(ctx context.Context) (*WhosOnline, error) {
	sessions, err := s.activeSessions()
	if err != nil {
		return nil, err
	}

	result := &WhosOnline{
		Members: []*OnlineMember{},
		Bots:    []string{},
	}
	seen := make(map[int64]struct{})
	for _, session := range sessions {
		switch {
		case session.IsBot:
			result.Bots = append(result.Bots, session.BotName)
		case session.MemberID == model.GuestID:
			result.Guests++
		default:
			if _, ok := seen[session.MemberID]; ok {
				continue
			}
			seen[session.MemberID] = struct{}{}
			member, err := s.members.GetMemberByID(session.MemberID)
			if err != nil {
				return nil, err
			}
			result.Members = append(result.Members, &OnlineMember{
				MemberID:    member.ID,
				DisplayName: member.DisplayName,
				Location:    s.BrowsingLocation(session),
				Anonymous:   member.Anonymous,
			})
		}
	}
	sort.SliceStable(result.Members, func(i, j int) bool {
		return result.Members[i].DisplayName < result.Members[j].DisplayName
	})
	sort.Strings(result.Bots)

	result.Total = len(result.Members) + result.Guests + len(result.Bots)
	result.MostOnline = s.mostOnline()

	if result.Total > result.MostOnline {
		if err := s.updateMostOnline(ctx, result.Total); err != nil {
			return nil, err
		}
		result.MostOnline = result.Total
	}
	return result, nil
}

// BrowsingLocation 把会话当前路径翻译成可读描述
// 路径指向的版块或主题已不存在时退回通用描述
func (s *OnlineService) BrowsingLocation(session *model.Session) string {
	if session == nil || session.Location == "" {
		return "Browsing the board"
	}
	parts := strings.Split(strings.Trim(session.Location, "/"), "/")
	if len(parts) >= 2 {
		id, err := strconv.Atoi(parts[1])
		if err == nil {
			switch parts[0] {
			case "forum":
				forum, err := s.forums.GetForumByID(id)
				if err == nil && forum != nil {
					return "Viewing forum " + forum.Title
				}
			case "topic":
				topic, err := s.topics.GetTopicByID(id)
				if err == nil && topic != nil {
					return "Viewing topic " + topic.Title
				}
			}
		}
	}
	return "Browsing the board"
}

func (s *OnlineService) activeSessions() ([]*model.Session, error) {
	all, err := s.sessions.GetAllSessions()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-s.window)
	var active []*model.Session
	for _, session := range all {
		if session.LastClick.After(cutoff) {
			active = append(active, session)
		}
	}
	return active, nil
}

// mostOnline 注册表里的历史最高在线纪录，无记录时为 0
func (s *OnlineService) mostOnline() int {
	for _, rec := range s.cache.Get(cache.Registry) {
		if rec.Str("name") == "mostOnline" {
			return rec.Int("value")
		}
	}
	return 0
}

func (s *OnlineService) updateMostOnline(ctx context.Context, total int) error {
	query, values, err := s.stmt().
		InsertInto("registry",
			[]string{"name", "value", "updatedAt"},
			[]any{"mostOnline", total, time.Now().UnixMilli()}).
		OnDuplicateKey([]string{"value", "updatedAt"}).
		Build()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return err
	}
	return s.cache.Update(ctx, cache.Registry)
}
