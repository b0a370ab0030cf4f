package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/core/logger"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// 访问者在 gin 上下文中的键
const VisitorKey = "visitor"

// VisitorMW 访问者解析中间件
// 从 X-Session-ID 头还原访问者，解析失败一律按访客处理，不拦截请求
func VisitorMW(members *service.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID int64
		if raw := c.GetHeader("X-Session-ID"); raw != "" {
			id, err := util.StrToInt64(raw)
			if err == nil {
				sessionID = id
			}
		}

		visitor, err := members.ResolveVisitor(sessionID)
		if err != nil {
			logger.Warn("failed to resolve visitor",
				logger.String("error", err.Error()),
				logger.Int64("session_id", sessionID))
			visitor = &service.Visitor{}
		}
		c.Set(VisitorKey, visitor)
		c.Next()
	}
}

// GetVisitor 取出当前请求的访问者，缺失时返回空访客
func GetVisitor(c *gin.Context) *service.Visitor {
	if v, ok := c.Get(VisitorKey); ok {
		if visitor, ok := v.(*service.Visitor); ok {
			return visitor
		}
	}
	return &service.Visitor{}
}
