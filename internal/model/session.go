package model

import "time"

// Session 访问会话，MemberID 为 GuestID 表示访客
// Location 是当前浏览的 URL 路径，用于推导 "谁在看什么"
type Session struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"memberId"`
	Expires   time.Time `json:"expires"`
	LastClick time.Time `json:"lastClick"`
	Location  string    `json:"location"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Hostname  string    `json:"hostname"`
	IsBot     bool      `json:"isBot"`
	BotName   string    `json:"botName"`
	IsAdmin   bool      `json:"isAdmin"`
}

// Setting 类型化配置行
type Setting struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Value        any    `json:"value"`
	DefaultValue any    `json:"defaultValue"`
}
