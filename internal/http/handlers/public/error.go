package public

import (
	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 统一错误响应
// err 非空时记录内部细节，响应体只带对外消息。
func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		appErr := response.WrapError(code, msg, err)
		requestLog(c).Errorw("request_failed",
			"path", c.FullPath(),
			"code", code,
			"error", appErr,
		)
	}
	response.Error(c, code, msg)
}
