package model

import "time"

// PollOption 投票选项，票数与投票人列表并行维护
type PollOption struct {
	Title  string  `json:"title"`
	Votes  int     `json:"votes"`
	Voters []int64 `json:"voters"`
}

// PollQuestion 投票问题，选项按选项 id 索引
type PollQuestion struct {
	Title   string                 `json:"title"`
	Options map[string]*PollOption `json:"options"`
}

// HasVoted 判断成员是否已在本问题的任一选项投过票
func (q *PollQuestion) HasVoted(memberID int64) bool {
	for _, opt := range q.Options {
		for _, voter := range opt.Voters {
			if voter == memberID {
				return true
			}
		}
	}
	return false
}

// Poll 投票状态，整体作为 topics 表上的一个 JSON 列往返
// Version 在每次写回时自增，用于发现并发丢失更新
type Poll struct {
	Questions map[string]*PollQuestion `json:"questions"`
	Version   int                      `json:"version"`
}

// HasVoted 判断成员是否已在任一选项投过票
func (p *Poll) HasVoted(memberID int64) bool {
	for _, q := range p.Questions {
		for _, opt := range q.Options {
			for _, voter := range opt.Voters {
				if voter == memberID {
					return true
				}
			}
		}
	}
	return false
}

// Topic 主题
// TotalReplies 是反范式计数，发帖路径必须同步维护
type Topic struct {
	ID           int       `json:"id"`
	CategoryID   int       `json:"categoryId"`
	ForumID      int       `json:"forumId"`
	Title        string    `json:"title"`
	CreatedBy    int64     `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	Locked       bool      `json:"locked"`
	TotalReplies int       `json:"totalReplies"`
	TotalViews   int       `json:"totalViews"`
	LastPostID   int       `json:"lastPostId"`
	Tags         []int     `json:"tags"`
	Pinned       bool      `json:"pinned"`
	Poll         *Poll     `json:"poll,omitempty"`
}
