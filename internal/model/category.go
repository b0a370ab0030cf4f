package model

import "time"

// Category 分类，版块的顶层容器
type Category struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	Visible   bool      `json:"visible"`
}
