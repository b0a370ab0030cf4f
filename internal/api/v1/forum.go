package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/middleware"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// ForumHandler Forum API Handler
type ForumHandler struct {
	svc    *service.ForumService
	forums repository.ForumRepository
	topics repository.TopicRepository
}

// NewForumHandler 创建 ForumHandler
func NewForumHandler(svc *service.ForumService, forums repository.ForumRepository, topics repository.TopicRepository) *ForumHandler {
	return &ForumHandler{svc: svc, forums: forums, topics: topics}
}

// Tree GET /api/v1/forums/tree
func (h *ForumHandler) Tree(c *gin.Context) {
	tree, err := h.svc.GetForumTree()
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, tree)
}

// Get GET /api/v1/forum/:fid
func (h *ForumHandler) Get(c *gin.Context) {
	fid, err := util.StrToInt(c.Param("fid"))
	if err != nil {
		response.BadRequest(c, "invalid fid")
		return
	}

	forum, err := h.forums.GetForumByID(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if forum == nil {
		response.NotFound(c, "forum not found")
		return
	}

	totalTopics, err := h.svc.GetTotalTopics(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	totalPosts, err := h.svc.GetTotalPosts(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	subForums, err := h.svc.GetSubForums(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	topics, err := h.topics.GetTopicsByForumID(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"forum":       forum,
		"totalTopics": totalTopics,
		"totalPosts":  totalPosts,
		"subForums":   subForums,
		"topics":      topics,
	})
}

// Redirect GET /api/v1/forum/:fid/redirect
// 返回跳转目标并计一次点击
func (h *ForumHandler) Redirect(c *gin.Context) {
	fid, err := util.StrToInt(c.Param("fid"))
	if err != nil {
		response.BadRequest(c, "invalid fid")
		return
	}

	url, err := h.svc.ResolveRedirect(fid)
	if err != nil {
		response.Fail(c, err)
		return
	}

	sessionKey := c.ClientIP()
	if visitor := middleware.GetVisitor(c); visitor.Session != nil {
		sessionKey = strconv.FormatInt(visitor.Session.ID, 10)
	}
	counted, err := h.svc.UpdateRedirectClicks(c.Request.Context(), fid, sessionKey)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, gin.H{"url": url, "counted": counted})
}
