package model

import "time"

// Group 用户组
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Emphasize   bool   `json:"emphasize"`
	IsModerator bool   `json:"isModerator"`
	IsAdmin     bool   `json:"isAdmin"`
	SortOrder   int    `json:"sortOrder"`
	Display     bool   `json:"display"`
}

// GuestID 访客哨兵成员 id
const GuestID int64 = 0

// Member 成员
// id 为 GuestID 的成员完全由默认设置合成，不对应任何缓存行
type Member struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"displayName"`
	PasswordHash    string    `json:"-"`
	LocaleID        int       `json:"localeId"`
	ThemeID         int       `json:"themeId"`
	PrimaryGroup    *Group    `json:"primaryGroup,omitempty"`
	SecondaryGroups []*Group  `json:"secondaryGroups,omitempty"`
	PerPage         int       `json:"perPage"`
	PhotoType       string    `json:"photoType"`
	PhotoID         int       `json:"photoId"`
	CoverPhotoType  string    `json:"coverPhotoType"`
	CoverPhotoID    int       `json:"coverPhotoId"`
	Joined          time.Time `json:"joined"`
	TotalPosts      int       `json:"totalPosts"`
	Reputation      int       `json:"reputation"`
	Signature       string    `json:"signature"`
	Anonymous       bool      `json:"anonymous"`
	IsGuest         bool      `json:"isGuest"`
}
