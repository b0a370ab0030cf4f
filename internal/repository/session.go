package repository

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
)

// SessionRepository 会话数据访问接口
type SessionRepository interface {
	GetSessionByID(id int64) (*model.Session, error)
	GetAllSessions() ([]*model.Session, error)
}

type sessionRepository struct {
	cache cache.Provider
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(c cache.Provider) SessionRepository {
	return &sessionRepository{cache: c}
}

// GetSessionByID 按 id 获取会话，未找到返回 nil
func (r *sessionRepository) GetSessionByID(id int64) (*model.Session, error) {
	for _, rec := range r.cache.Get(cache.Sessions) {
		if rec.Int64("id") == id {
			return r.buildSessionFromData(rec, id)
		}
	}
	return nil, nil
}

// GetAllSessions 获取全部会话
func (r *sessionRepository) GetAllSessions() ([]*model.Session, error) {
	records := r.cache.Get(cache.Sessions)
	sessions := make([]*model.Session, 0, len(records))
	for _, rec := range records {
		session, err := r.buildSessionFromData(rec, rec.Int64("id"))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *sessionRepository) buildSessionFromData(rec cache.Record, id int64) (*model.Session, error) {
	return &model.Session{
		ID:        id,
		MemberID:  rec.Int64("memberId"),
		Expires:   rec.Time("expires"),
		LastClick: rec.Time("lastClick"),
		Location:  rec.Str("location"),
		IPAddress: rec.Str("ipAddress"),
		UserAgent: rec.Str("userAgent"),
		Hostname:  rec.Str("hostname"),
		IsBot:     rec.Bool("isBot"),
		BotName:   rec.Str("botName"),
		IsAdmin:   rec.Bool("isAdmin"),
	}, nil
}
