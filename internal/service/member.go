package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// ProfileVisitor 资料页访客条目
type ProfileVisitor struct {
	Member    *model.Member `json:"member"`
	VisitedAt time.Time     `json:"visitedAt"`
}

// MemberService 成员领域服务
type MemberService struct {
	cache    cache.Provider
	db       Execer
	stmt     StatementFactory
	members  repository.MemberRepository
	sessions repository.SessionRepository
	km       kmutex.KeyedMutex
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(
	c cache.Provider,
	db Execer,
	stmt StatementFactory,
	members repository.MemberRepository,
	sessions repository.SessionRepository,
) *MemberService {
	return &MemberService{cache: c, db: db, stmt: stmt, members: members, sessions: sessions}
}

// ResolveVisitor 从会话 id 还原请求访问者
// 会话不存在或已过期时按访客处理，不报错
func (s *MemberService) ResolveVisitor(sessionID int64) (*Visitor, error) {
	session, err := s.sessions.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expires.Before(time.Now()) {
		guest, err := s.members.GetMemberByID(model.GuestID)
		if err != nil {
			return nil, err
		}
		return &Visitor{Member: guest}, nil
	}
	member, err := s.members.GetMemberByID(session.MemberID)
	if err != nil {
		return nil, err
	}
	return &Visitor{Member: member, Session: session}, nil
}

// HashPassword 生成密码散列
func (s *MemberService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验密码与散列是否匹配
func (s *MemberService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RecordProfileVisit 记录资料页来访
// 访客与本人浏览不记录，同一访客重复来访只更新时间
func (s *MemberService) RecordProfileVisit(ctx context.Context, profileID, visitorID int64) error {
	if visitorID == model.GuestID || visitorID == profileID {
		return nil
	}
	unlock := s.km.Lock(fmt.Sprintf("profile:visit:%d:%d", profileID, visitorID))
	defer unlock()

	query, values, err := s.stmt().
		InsertInto("profile_visitors",
			[]string{"profileId", "visitorId", "visitedAt"},
			[]any{profileID, visitorID, time.Now().UnixMilli()}).
		OnDuplicateKey([]string{"visitedAt"}).
		Build()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return err
	}
	return s.cache.Update(ctx, cache.ProfileVisitors)
}

// GetRecentProfileVisitors 资料页最近来访，按访问时间倒序取前 limit 条
func (s *MemberService) GetRecentProfileVisitors(profileID int64, limit int) ([]*ProfileVisitor, error) {
	type entry struct {
		visitorID int64
		visitedAt time.Time
	}
	var entries []entry
	for _, rec := range s.cache.Get(cache.ProfileVisitors) {
		if rec.Int64("profileId") != profileID {
			continue
		}
		entries = append(entries, entry{
			visitorID: rec.Int64("visitorId"),
			visitedAt: rec.Time("visitedAt"),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].visitedAt.After(entries[j].visitedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	visitors := make([]*ProfileVisitor, 0, len(entries))
	for _, e := range entries {
		member, err := s.members.GetMemberByID(e.visitorID)
		if err != nil {
			return nil, err
		}
		visitors = append(visitors, &ProfileVisitor{Member: member, VisitedAt: e.visitedAt})
	}
	return visitors, nil
}
