package service

import (
	"context"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/snowflake"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// TouchInput 会话心跳输入
type TouchInput struct {
	SessionID int64
	MemberID  int64
	Location  string
	IPAddress string
	UserAgent string
	Hostname  string
	IsBot     bool
	BotName   string
	IsAdmin   bool
}

// SessionService 会话领域服务
type SessionService struct {
	cache    cache.Provider
	db       Execer
	stmt     StatementFactory
	sessions repository.SessionRepository
	lifetime time.Duration
}

// NewSessionService 创建 SessionService 实例，lifetime 为会话有效期
func NewSessionService(c cache.Provider, db Execer, stmt StatementFactory, sessions repository.SessionRepository, lifetime time.Duration) *SessionService {
	return &SessionService{cache: c, db: db, stmt: stmt, sessions: sessions, lifetime: lifetime}
}

// Touch 会话心跳
//
// 每次请求调用一次：没有会话 id 时签发雪花 id 建新会话，
// 已有会话只滚动最后点击时间、当前位置与过期时间
func (s *SessionService) Touch(ctx context.Context, in TouchInput) (*model.Session, error) {
	id := in.SessionID
	if id == 0 {
		id = snowflake.Generate()
	}
	now := time.Now()
	expires := now.Add(s.lifetime)

	botName := ""
	bot := 0
	if in.IsBot {
		bot = 1
		botName = in.BotName
	}
	admin := 0
	if in.IsAdmin {
		admin = 1
	}

	query, values, err := s.stmt().
		InsertInto("sessions",
			[]string{"id", "memberId", "expires", "lastClick", "location", "ipAddress", "userAgent", "hostname", "isBot", "botName", "isAdmin"},
			[]any{id, in.MemberID, expires.UnixMilli(), now.UnixMilli(), in.Location, in.IPAddress, in.UserAgent, in.Hostname, bot, botName, admin}).
		OnDuplicateKey([]string{"memberId", "expires", "lastClick", "location", "isAdmin"}).
		Build()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return nil, err
	}
	if err := s.cache.Update(ctx, cache.Sessions); err != nil {
		return nil, err
	}
	return s.sessions.GetSessionByID(id)
}

// PruneExpired 清理过期会话，返回是否发生了删除
func (s *SessionService) PruneExpired(ctx context.Context) (bool, error) {
	expired := false
	cutoff := time.Now().UnixMilli()
	for _, rec := range s.cache.Get(cache.Sessions) {
		if rec.Int64("expires") < cutoff {
			expired = true
			break
		}
	}
	if !expired {
		return false, nil
	}

	query, values, err := s.stmt().
		DeleteFrom("sessions").
		Where("expires < ?", cutoff).
		Build()
	if err != nil {
		return false, err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return false, err
	}
	if err := s.cache.Update(ctx, cache.Sessions); err != nil {
		return false, err
	}
	return true, nil
}
