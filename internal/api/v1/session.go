package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/middleware"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// SessionHandler Session API Handler
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Touch POST /api/v1/session/touch
// 会话心跳，无会话时签发新会话并返回其 id
func (h *SessionHandler) Touch(c *gin.Context) {
	var req struct {
		Location string `json:"location"`
		IsBot    bool   `json:"isBot"`
		BotName  string `json:"botName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "invalid request body")
		return
	}

	visitor := middleware.GetVisitor(c)
	in := service.TouchInput{
		MemberID:  model.GuestID,
		Location:  req.Location,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		IsBot:     req.IsBot,
		BotName:   req.BotName,
	}
	if visitor.Session != nil {
		in.SessionID = visitor.Session.ID
		in.IsAdmin = visitor.Session.IsAdmin
	}
	if visitor.Member != nil {
		in.MemberID = visitor.Member.ID
	}

	session, err := h.svc.Touch(c.Request.Context(), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"sessionId": strconv.FormatInt(session.ID, 10), "expires": session.Expires})
}
