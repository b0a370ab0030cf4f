package response

import (
	"errors"
	"net/http"

	"github.com/samwilcox/nextboard-sub000/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope AJAX 响应信封
// 失败时错误信息放在 data.message 里，HTTP 状态仍为 200
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Success Success response
func Success(c *gin.Context, data any) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Fail Fail response, message carried inside data
func Fail(c *gin.Context, err error) {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		c.JSON(http.StatusOK, Envelope{
			Success: false,
			Data:    gin.H{"code": ae.Code, "message": ae.Message},
		})
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Success: false,
		Data:    gin.H{"code": apperr.CodeInternalError, "message": err.Error()},
	})
}

// FailWithMessage Fail with explicit message
func FailWithMessage(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: false,
		Data:    gin.H{"code": code, "message": message},
	})
}

// BadRequest Bad request response
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Data:    gin.H{"code": apperr.CodeBadRequest, "message": msg},
	})
}

// NotFound Not found response
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Envelope{
		Success: false,
		Data:    gin.H{"code": apperr.CodeNotFound, "message": msg},
	})
}

// Forbidden Forbidden response
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Envelope{
		Success: false,
		Data:    gin.H{"code": apperr.CodeForbidden, "message": msg},
	})
}

// InternalError Internal server error response
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Data:    gin.H{"code": apperr.CodeInternalError, "message": msg},
	})
}
