package mgt

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/config"
	"github.com/samwilcox/nextboard-sub000/internal/core/settings"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
)

// SettingsHandler Settings Management API Handler
type SettingsHandler struct {
	provider cache.Provider
	settings repository.SettingRepository
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(provider cache.Provider, settings repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{provider: provider, settings: settings}
}

// Get GET /api/mgt/settings/:name
// 原始设置行，含默认值，供排查配置用
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settings.GetSettingByName(c.Param("name"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if setting == nil {
		response.NotFound(c, "setting not found")
		return
	}
	response.Success(c, setting)
}

// Reload POST /api/mgt/settings/reload
// 先刷新 settings 集合再重新解析配置表
func (h *SettingsHandler) Reload(c *gin.Context) {
	if err := h.provider.Update(c.Request.Context(), cache.Settings); err != nil {
		response.Fail(c, err)
		return
	}
	if err := settings.Init(h.provider, config.Get().Board.EmoticonsFile); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, nil)
}
