package public

import (
	"errors"
	"strings"

	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartLineRequest 加购请求
type AddCartLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartLineRequest 购物车行数量更新请求
type UpdateCartLineRequest struct {
	CartLineID uint `json:"cart_line_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// RemoveCartLineRequest 购物车行删除请求
type RemoveCartLineRequest struct {
	CartLineID uint `json:"cart_line_id" binding:"required"`
}

// ClearGuestCartRequest 清空游客购物车请求
type ClearGuestCartRequest struct {
	GuestID string `json:"guest_id"`
}

// GetCart 获取当前所有者的购物车
func (h *Handler) GetCart(c *gin.Context) {
	owner := resolveOwner(c)
	lines, err := h.CartService.List(owner)
	if err != nil {
		respondCartError(c, err, "获取购物车失败")
		return
	}
	response.Success(c, gin.H{"items": lines})
}

// GetCheckoutCart 获取结算页购物车（仅登录用户）
func (h *Handler) GetCheckoutCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	lines, err := h.CartService.List(models.UserCartOwner(uid))
	if err != nil {
		respondCartError(c, err, "获取购物车失败")
		return
	}
	response.Success(c, gin.H{"items": lines})
}

// AddCartLine 加购商品
func (h *Handler) AddCartLine(c *gin.Context) {
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	err := h.CartService.Add(service.AddCartLineInput{
		Owner:     resolveOwner(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err, "加入购物车失败")
		return
	}
	response.SuccessWithMsg(c, "已加入购物车", nil)
}

// UpdateCartLine 覆盖购物车行数量
func (h *Handler) UpdateCartLine(c *gin.Context) {
	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.CartService.Update(resolveOwner(c), req.CartLineID, req.Quantity); err != nil {
		respondCartError(c, err, "更新购物车失败")
		return
	}
	response.SuccessWithMsg(c, "购物车已更新", nil)
}

// RemoveCartLine 删除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	var req RemoveCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.CartService.Remove(resolveOwner(c), req.CartLineID); err != nil {
		respondCartError(c, err, "删除购物车行失败")
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}

// ClearGuestCart 清空游客购物车
// 登录成功后前端调用，游客 ID 从请求体或 header 取。
func (h *Handler) ClearGuestCart(c *gin.Context) {
	var req ClearGuestCartRequest
	// 请求体可选，解析失败按未提供处理
	_ = c.ShouldBindJSON(&req)
	guestID := strings.TrimSpace(req.GuestID)
	if guestID == "" {
		guestID = guestIDFromRequest(c)
	}
	deleted, err := h.CartService.ClearGuest(guestID)
	if err != nil {
		respondCartError(c, err, "清空游客购物车失败")
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

func respondCartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrOwnerRequired):
		respondError(c, response.CodeBadRequest, "缺少购物车所有者标识", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "商品不存在", nil)
	case errors.Is(err, service.ErrCartLineNotFound):
		respondError(c, response.CodeNotFound, "购物车行不存在", nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeBadRequest, "商品库存不足", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
