package model

import "time"

// 每版块阈值默认值，版块记录缺省时使用
const (
	DefaultHotThreshold        = 20
	DefaultPopularityThreshold = 1000
)

// Redirect 跳转版块配置，存储为 forums 表上的 JSON 列
type Redirect struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Clicks  int    `json:"clicks"`
}

// Forum 版块
// HasParent 为 true 时 ParentID 必须可解析；父链成环不做检测，由调用方保证
type Forum struct {
	ID                  int       `json:"id"`
	CategoryID          int       `json:"categoryId"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	SortOrder           int       `json:"sortOrder"`
	CreatedAt           time.Time `json:"createdAt"`
	HasParent           bool      `json:"hasParent"`
	ParentID            int       `json:"parentId"`
	Visible             bool      `json:"visible"`
	Archived            bool      `json:"archived"`
	TotalTopics         int       `json:"totalTopics"`
	TotalPosts          int       `json:"totalPosts"`
	LastPostID          int       `json:"lastPostId"`
	Redirect            *Redirect `json:"redirect,omitempty"`
	PasswordProtected   bool      `json:"passwordProtected"`
	HotThreshold        int       `json:"hotThreshold"`
	PopularityThreshold int       `json:"popularityThreshold"`
	DefaultFilter       string    `json:"defaultFilter"`
	PollsEnabled        bool      `json:"pollsEnabled"`
	MaxPollQuestions    int       `json:"maxPollQuestions"`
}

// IsRedirect 是否为跳转版块
func (f *Forum) IsRedirect() bool {
	return f.Redirect != nil && f.Redirect.Enabled
}
