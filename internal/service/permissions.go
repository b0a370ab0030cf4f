package service

import "github.com/samwilcox/nextboard-sub000/internal/model"

// Permissions 权限判定端口
// 规则评估不在本系统范围内，默认实现一律放行
type Permissions interface {
	Can(action string, visitor *Visitor, contentType model.ContentType, contentID int) bool
}

// PassThroughPermissions 全部放行的权限实现
type PassThroughPermissions struct{}

// NewPassThroughPermissions 创建放行权限实例
func NewPassThroughPermissions() Permissions {
	return &PassThroughPermissions{}
}

// Can always allows
func (p *PassThroughPermissions) Can(string, *Visitor, model.ContentType, int) bool {
	return true
}
