package mgt

import (
	"github.com/gin-gonic/gin"

	"github.com/samwilcox/nextboard-sub000/internal/pkg/response"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

// SessionHandler Session Management API Handler
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Prune POST /api/mgt/sessions/prune
func (h *SessionHandler) Prune(c *gin.Context) {
	pruned, err := h.svc.PruneExpired(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"pruned": pruned})
}
