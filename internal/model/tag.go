package model

import "time"

// Tag 标签，主题/帖子通过 id 数组引用
type Tag struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment 附件
// ForumID 由使用方在取用时注入，不存储在附件自身的记录上
type Attachment struct {
	ID             int       `json:"id"`
	MemberID       int64     `json:"memberId"`
	FileName       string    `json:"fileName"`
	FileSize       int64     `json:"fileSize"`
	UploadedAt     time.Time `json:"uploadedAt"`
	TotalDownloads int       `json:"totalDownloads"`
	ForumID        int       `json:"forumId"`
}
