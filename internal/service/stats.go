package service

import (
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// BoardStats 板块全站统计
type BoardStats struct {
	TotalTopics  int    `json:"totalTopics"`
	TotalPosts   int    `json:"totalPosts"`
	TotalMembers int    `json:"totalMembers"`
	NewestMember string `json:"newestMember"`
	MostOnline   int    `json:"mostOnline"`
}

// StatsService 全站统计领域服务，纯读侧
type StatsService struct {
	cache   cache.Provider
	members repository.MemberRepository
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(c cache.Provider, members repository.MemberRepository) *StatsService {
	return &StatsService{cache: c, members: members}
}

// GetBoardStats 全站统计快照
// 最新成员按加入时间取最晚，历史最高在线读注册表
func (s *StatsService) GetBoardStats() (*BoardStats, error) {
	stats := &BoardStats{
		TotalTopics:  len(s.cache.Get(cache.Topics)),
		TotalPosts:   len(s.cache.Get(cache.Posts)),
		TotalMembers: len(s.cache.Get(cache.Members)),
	}

	var newestID int64
	var newestJoined int64
	for _, rec := range s.cache.Get(cache.Members) {
		if joined := rec.Int64("joined"); joined >= newestJoined {
			newestJoined = joined
			newestID = rec.Int64("id")
		}
	}
	if newestID != 0 {
		member, err := s.members.GetMemberByID(newestID)
		if err != nil {
			return nil, err
		}
		stats.NewestMember = member.DisplayName
	}

	for _, rec := range s.cache.Get(cache.Registry) {
		if rec.Str("name") == "mostOnline" {
			stats.MostOnline = rec.Int("value")
			break
		}
	}
	return stats, nil
}
