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

// ContentHandler 点赞/关注 API Handler
type ContentHandler struct {
	likes    *service.LikeService
	follows  *service.FollowService
	likeRepo repository.LikeRepository
	perms    service.Permissions
}

// NewContentHandler 创建 ContentHandler
func NewContentHandler(likes *service.LikeService, follows *service.FollowService, likeRepo repository.LikeRepository, perms service.Permissions) *ContentHandler {
	return &ContentHandler{likes: likes, follows: follows, likeRepo: likeRepo, perms: perms}
}

func (h *ContentHandler) parseTarget(c *gin.Context) (model.ContentType, int, bool) {
	contentType, err := model.ParseContentType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "invalid content type")
		return "", 0, false
	}
	cid, err := util.StrToInt(c.Param("cid"))
	if err != nil {
		response.BadRequest(c, "invalid cid")
		return "", 0, false
	}
	return contentType, cid, true
}

// Status GET /api/v1/content/:type/:cid
// 内容的点赞/关注计数与访问者状态
func (h *ContentHandler) Status(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}

	visitor := middleware.GetVisitor(c)
	liked := false
	following := false
	if !visitor.IsGuest() {
		liked = h.likes.HasLikedContent(contentType, cid, visitor.Member.ID)
		following = h.follows.IsFollowingContent(contentType, cid, visitor.Member.ID)
	}

	response.Success(c, gin.H{
		"totalLikes":     h.likes.GetTotalLikes(contentType, cid),
		"totalFollowers": h.follows.GetTotalFollowers(contentType, cid),
		"liked":          liked,
		"following":      following,
	})
}

// Likes GET /api/v1/content/:type/:cid/likes
// 内容的点赞明细列表
func (h *ContentHandler) Likes(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}
	likes, err := h.likeRepo.GetLikesByContent(contentType, cid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, likes)
}

// Like POST /api/v1/content/:type/:cid/like
func (h *ContentHandler) Like(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}
	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot like content")
		return
	}
	if !h.perms.Can("like", visitor, contentType, cid) {
		response.Forbidden(c, "not allowed")
		return
	}

	changed, err := h.likes.LikeContent(c.Request.Context(), contentType, cid, visitor.Member.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"changed": changed})
}

// Unlike DELETE /api/v1/content/:type/:cid/like
func (h *ContentHandler) Unlike(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}
	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot like content")
		return
	}

	changed, err := h.likes.UnlikeContent(c.Request.Context(), contentType, cid, visitor.Member.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"changed": changed})
}

// Follow POST /api/v1/content/:type/:cid/follow
func (h *ContentHandler) Follow(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}
	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot follow content")
		return
	}
	if !h.perms.Can("follow", visitor, contentType, cid) {
		response.Forbidden(c, "not allowed")
		return
	}

	changed, err := h.follows.FollowContent(c.Request.Context(), contentType, cid, visitor.Member.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"changed": changed})
}

// Unfollow DELETE /api/v1/content/:type/:cid/follow
func (h *ContentHandler) Unfollow(c *gin.Context) {
	contentType, cid, ok := h.parseTarget(c)
	if !ok {
		return
	}
	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot follow content")
		return
	}

	changed, err := h.follows.UnfollowContent(c.Request.Context(), contentType, cid, visitor.Member.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"changed": changed})
}
