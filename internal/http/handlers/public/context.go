package public

import (
	"strings"

	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/models"

	"github.com/gin-gonic/gin"
)

const maxGuestIDLength = 64

// getUserID 从上下文读取认证中间件写入的用户 ID
func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		respondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return 0, false
	}
	uid, ok := value.(uint)
	if !ok || uid == 0 {
		respondError(c, response.CodeUnauthorized, "未登录或登录已过期", nil)
		return 0, false
	}
	return uid, true
}

// resolveOwner 解析购物车所有者
// 优先取认证中间件写入的用户 ID；未登录时回退到请求携带的游客 ID。
// 两者都缺失返回零值 owner，由 service 层拒绝。
func resolveOwner(c *gin.Context) models.CartOwner {
	if value, exists := c.Get("user_id"); exists {
		if uid, ok := value.(uint); ok && uid != 0 {
			return models.UserCartOwner(uid)
		}
	}
	return models.GuestCartOwner(guestIDFromRequest(c))
}

// guestIDFromRequest 读取请求中的游客 ID（header 优先，query 兜底）
func guestIDFromRequest(c *gin.Context) string {
	guestID := strings.TrimSpace(c.GetHeader("X-Guest-ID"))
	if guestID == "" {
		guestID = strings.TrimSpace(c.Query("guest_id"))
	}
	if len(guestID) > maxGuestIDLength {
		return ""
	}
	return guestID
}
