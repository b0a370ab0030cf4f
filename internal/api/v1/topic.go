package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/middleware"
	"github.com/samwilcox/nextboard-sub000/internal/model"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// TopicHandler Topic API Handler
type TopicHandler struct {
	svc    *service.TopicService
	polls  *service.PollService
	topics repository.TopicRepository
	posts  repository.PostRepository
	perms  service.Permissions
}

// NewTopicHandler 创建 TopicHandler
func NewTopicHandler(svc *service.TopicService, polls *service.PollService, topics repository.TopicRepository, posts repository.PostRepository, perms service.Permissions) *TopicHandler {
	return &TopicHandler{svc: svc, polls: polls, topics: topics, posts: posts, perms: perms}
}

// Get GET /api/v1/topic/:tid
// 浏览主题，附带帖子分页、热度与人气标记，并计一次浏览
func (h *TopicHandler) Get(c *gin.Context) {
	tid, err := util.StrToInt(c.Param("tid"))
	if err != nil {
		response.BadRequest(c, "invalid tid")
		return
	}

	topic, err := h.topics.GetTopicByID(tid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if topic == nil {
		response.NotFound(c, "topic not found")
		return
	}

	posts, err := h.posts.GetPostsByTopicID(tid)
	if err != nil {
		response.Fail(c, err)
		return
	}

	visitor := middleware.GetVisitor(c)
	perPage := 20
	if visitor.Member != nil && visitor.Member.PerPage > 0 {
		perPage = visitor.Member.PerPage
	}
	page, _ := util.StrToInt(c.DefaultQuery("page", "1"))
	pagination := util.Paginate(len(posts), page, perPage)
	start := (pagination.CurrentPage - 1) * perPage
	end := start + perPage
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	hot, err := h.svc.GetHotStatus(tid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	popularity, err := h.svc.GetPopularityStatus(tid)
	if err != nil {
		response.Fail(c, err)
		return
	}

	sessionKey := c.ClientIP()
	if visitor.Session != nil {
		sessionKey = strconv.FormatInt(visitor.Session.ID, 10)
	}
	if _, err := h.svc.IncrementViews(c.Request.Context(), tid, sessionKey); err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"topic":      topic,
		"posts":      posts[start:end],
		"pagination": pagination,
		"hot":        hot,
		"popularity": popularity,
	})
}

// CreatePost POST /api/v1/topic/:tid/posts
func (h *TopicHandler) CreatePost(c *gin.Context) {
	tid, err := util.StrToInt(c.Param("tid"))
	if err != nil {
		response.BadRequest(c, "invalid tid")
		return
	}

	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot post")
		return
	}
	if !h.perms.Can("post", visitor, model.ContentTopic, tid) {
		response.Forbidden(c, "not allowed")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content is required")
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), tid, visitor.Member.ID, req.Content)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, post)
}

// GetPoll GET /api/v1/topic/:tid/poll
func (h *TopicHandler) GetPoll(c *gin.Context) {
	tid, err := util.StrToInt(c.Param("tid"))
	if err != nil {
		response.BadRequest(c, "invalid tid")
		return
	}

	poll, err := h.polls.GetPoll(tid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, poll)
}

// Vote POST /api/v1/topic/:tid/poll/vote
func (h *TopicHandler) Vote(c *gin.Context) {
	tid, err := util.StrToInt(c.Param("tid"))
	if err != nil {
		response.BadRequest(c, "invalid tid")
		return
	}

	visitor := middleware.GetVisitor(c)
	if visitor.IsGuest() {
		response.Forbidden(c, "guests cannot vote")
		return
	}
	if !h.perms.Can("vote", visitor, model.ContentTopic, tid) {
		response.Forbidden(c, "not allowed")
		return
	}

	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
		OptionID   string `json:"optionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "questionId and optionId are required")
		return
	}

	if err := h.polls.CastVote(c.Request.Context(), tid, visitor.Member.ID, req.QuestionID, req.OptionID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, nil)
}
