package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/core/settings"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/util"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// BoardHandler 全站级 API Handler
type BoardHandler struct {
	online *service.OnlineService
	stats  *service.StatsService
	tags   *service.TagService
}

// NewBoardHandler 创建 BoardHandler
func NewBoardHandler(online *service.OnlineService, stats *service.StatsService, tags *service.TagService) *BoardHandler {
	return &BoardHandler{online: online, stats: stats, tags: tags}
}

// WhosOnline GET /api/v1/online
func (h *BoardHandler) WhosOnline(c *gin.Context) {
	result, err := h.online.GetWhosOnline(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

// Stats GET /api/v1/stats
func (h *BoardHandler) Stats(c *gin.Context) {
	stats, err := h.stats.GetBoardStats()
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, stats)
}

// Tags GET /api/v1/tags
// 可选 forum_id 参数限定统计范围
func (h *BoardHandler) Tags(c *gin.Context) {
	forumID := 0
	if raw := c.Query("forum_id"); raw != "" {
		id, err := util.StrToInt(raw)
		if err != nil {
			response.BadRequest(c, "invalid forum_id")
			return
		}
		forumID = id
	}

	tags, err := h.tags.ListWithCounts(forumID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, tags)
}

// Emoticons GET /api/v1/emoticons
func (h *BoardHandler) Emoticons(c *gin.Context) {
	response.Success(c, settings.Emoticons())
}
