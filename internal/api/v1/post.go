package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// PostHandler Post API Handler
type PostHandler struct {
	posts       repository.PostRepository
	attachments repository.AttachmentRepository
}

// NewPostHandler 创建 PostHandler
func NewPostHandler(posts repository.PostRepository, attachments repository.AttachmentRepository) *PostHandler {
	return &PostHandler{posts: posts, attachments: attachments}
}

// Get GET /api/v1/post/:pid
// 单帖详情，附件按帖子的 id 列表解析，版块归属取帖子所在版块
func (h *PostHandler) Get(c *gin.Context) {
	pid, err := util.StrToInt(c.Param("pid"))
	if err != nil {
		response.BadRequest(c, "invalid pid")
		return
	}

	post, err := h.posts.GetPostByID(pid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}

	attachments := make([]*model.Attachment, 0, len(post.Attachments))
	for _, id := range post.Attachments {
		attachment, err := h.attachments.GetAttachmentByID(id, post.ForumID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		if attachment != nil {
			attachments = append(attachments, attachment)
		}
	}

	response.Success(c, gin.H{
		"post":        post,
		"attachments": attachments,
	})
}
