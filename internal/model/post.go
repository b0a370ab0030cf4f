package model

import "time"

// Post 帖子
// PostNumber 是帖子在主题内按 CreatedAt 排序的 1 起始序号，
// 不落库，由 repository 在每次加载时重新推导
type Post struct {
	ID               int       `json:"id"`
	CategoryID       int       `json:"categoryId"`
	ForumID          int       `json:"forumId"`
	TopicID          int       `json:"topicId"`
	CreatedBy        int64     `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	Content          string    `json:"content"`
	Tags             []int     `json:"tags"`
	Attachments      []int     `json:"attachments"`
	IsFirstPost      bool      `json:"isFirstPost"`
	PostNumber       int       `json:"postNumber"`
	IPAddress        string    `json:"ipAddress"`
	Hostname         string    `json:"hostname"`
	UserAgent        string    `json:"userAgent"`
	IncludeSignature bool      `json:"includeSignature"`
}
