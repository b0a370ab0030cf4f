package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/middleware"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// MemberHandler Member API Handler
type MemberHandler struct {
	svc     *service.MemberService
	members repository.MemberRepository
}

// NewMemberHandler 创建 MemberHandler
func NewMemberHandler(svc *service.MemberService, members repository.MemberRepository) *MemberHandler {
	return &MemberHandler{svc: svc, members: members}
}

// Get GET /api/v1/member/:mid
// 浏览资料页，登录访问者会留下来访记录
func (h *MemberHandler) Get(c *gin.Context) {
	mid, err := util.StrToInt64(c.Param("mid"))
	if err != nil {
		response.BadRequest(c, "invalid mid")
		return
	}

	member, err := h.members.GetMemberByID(mid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if member.ID == model.GuestID && mid != model.GuestID {
		response.NotFound(c, "member not found")
		return
	}

	visitor := middleware.GetVisitor(c)
	if !visitor.IsGuest() {
		if err := h.svc.RecordProfileVisit(c.Request.Context(), mid, visitor.Member.ID); err != nil {
			response.Fail(c, err)
			return
		}
	}

	response.Success(c, member)
}

// Visitors GET /api/v1/member/:mid/visitors
func (h *MemberHandler) Visitors(c *gin.Context) {
	mid, err := util.StrToInt64(c.Param("mid"))
	if err != nil {
		response.BadRequest(c, "invalid mid")
		return
	}

	limit, _ := util.StrToInt(c.DefaultQuery("limit", "10"))
	visitors, err := h.svc.GetRecentProfileVisitors(mid, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, visitors)
}
