package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/apperr"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/kmutex"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// PollService 投票领域服务
//
// 投票状态整体存在 topics 表的 JSON 列里，写回是读改写，
// 同一主题的投票在进程内用键锁串行化
type PollService struct {
	cache  cache.Provider
	db     Execer
	stmt   StatementFactory
	topics repository.TopicRepository
	km     kmutex.KeyedMutex
}

// NewPollService 创建 PollService 实例
func NewPollService(c cache.Provider, db Execer, stmt StatementFactory, topics repository.TopicRepository) *PollService {
	return &PollService{cache: c, db: db, stmt: stmt, topics: topics}
}

// CastVote 在主题投票中投一票
//
// 已投判定按问题隔离，多问题投票可以逐题作答，同一问题只许投一次
// 前置检查顺序：主题存在 -> 未锁定 -> 有投票 -> 问题合法 -> 本问题未投过 -> 选项合法
// 通过后票数自增、记录投票人、版本号加一，写回后刷新 topics
func (s *PollService) CastVote(ctx context.Context, topicID int, memberID int64, questionID, optionID string) error {
	unlock := s.km.Lock(fmt.Sprintf("poll:%d", topicID))
	defer unlock()

	topic, err := s.topics.GetTopicByID(topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return apperr.ErrTopicNotFound
	}
	if topic.Locked {
		return apperr.ErrPollClosed
	}
	if topic.Poll == nil {
		return apperr.ErrPollNotFound
	}

	question, ok := topic.Poll.Questions[questionID]
	if !ok {
		return apperr.ErrInvalidParams
	}
	if question.HasVoted(memberID) {
		return apperr.ErrAlreadyVoted
	}
	option, ok := question.Options[optionID]
	if !ok {
		return apperr.ErrInvalidParams
	}

	option.Votes++
	option.Voters = append(option.Voters, memberID)
	topic.Poll.Version++

	raw, err := json.Marshal(topic.Poll)
	if err != nil {
		return err
	}

	query, values, err := s.stmt().
		Update("topics").
		Set([]string{"poll"}, []any{string(raw)}).
		Where("id = ?", topicID).
		Build()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, statement(query, values)); err != nil {
		return err
	}

	return s.cache.Update(ctx, cache.Topics)
}

// GetPoll 获取主题的投票，主题无投票时报错
func (s *PollService) GetPoll(topicID int) (*PollView, error) {
	topic, err := s.topics.GetTopicByID(topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperr.ErrTopicNotFound
	}
	if topic.Poll == nil {
		return nil, apperr.ErrPollNotFound
	}
	return &PollView{Poll: topic.Poll, Closed: topic.Locked}, nil
}

// PollView 投票的读侧视图，附带开关状态
type PollView struct {
	Poll   *model.Poll `json:"poll"`
	Closed bool        `json:"closed"`
}
