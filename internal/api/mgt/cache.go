package mgt

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
)

// CacheHandler Cache Management API Handler
type CacheHandler struct {
	provider cache.Provider
}

// NewCacheHandler 创建 CacheHandler
func NewCacheHandler(provider cache.Provider) *CacheHandler {
	return &CacheHandler{provider: provider}
}

// Status GET /api/mgt/cache
// 各集合当前快照的行数
func (h *CacheHandler) Status(c *gin.Context) {
	counts := make(map[string]int, len(cache.Collections))
	for _, name := range cache.Collections {
		counts[name] = len(h.provider.Get(name))
	}
	response.Success(c, counts)
}

// Refresh POST /api/mgt/cache/refresh
// 不带集合名时刷新全部集合
func (h *CacheHandler) Refresh(c *gin.Context) {
	var req struct {
		Collections []string `json:"collections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "invalid request body")
		return
	}

	names := req.Collections
	if len(names) == 0 {
		names = cache.Collections
	}
	if err := h.provider.UpdateAll(c.Request.Context(), names...); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"refreshed": names})
}
