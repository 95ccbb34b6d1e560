package public

import (
	"github.com/techmart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 获取全部分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类失败", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// ListSubCategories 获取分类下的子分类
func (h *Handler) ListSubCategories(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	subCategories, err := h.CatalogService.ListSubCategories(categoryID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取子分类失败", err)
		return
	}
	response.Success(c, gin.H{"sub_categories": subCategories})
}

// GetNavMenu 获取导航菜单
func (h *Handler) GetNavMenu(c *gin.Context) {
	menu, err := h.CatalogService.NavMenu()
	if err != nil {
		respondError(c, response.CodeInternal, "获取导航菜单失败", err)
		return
	}
	response.Success(c, gin.H{"menu": menu})
}
