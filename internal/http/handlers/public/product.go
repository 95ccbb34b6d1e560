package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/repository"
	"github.com/techmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts 首页商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	sort := strings.TrimSpace(c.Query("sort"))
	products, err := h.ProductService.ListHome(sort)
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// ListNewestProducts 最新上架商品
func (h *Handler) ListNewestProducts(c *gin.Context) {
	products, err := h.ProductService.ListNewest()
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// ListCheapestProducts 价格最低商品
func (h *Handler) ListCheapestProducts(c *gin.Context) {
	products, err := h.ProductService.ListCheapest()
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// ListProductsByCategory 按分类查询商品
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	products, err := h.ProductService.ListByCategory(categoryID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		default:
			respondError(c, response.CodeInternal, "获取商品详情失败", err)
		}
		return
	}
	response.Success(c, product)
}

// GetFilterData 获取筛选页可用选项
func (h *Handler) GetFilterData(c *gin.Context) {
	options, err := h.ProductService.FilterOptions()
	if err != nil {
		respondError(c, response.CodeInternal, "获取筛选数据失败", err)
		return
	}
	response.Success(c, options)
}

// FilterProducts 按筛选条件查询商品
func (h *Handler) FilterProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		CategoryIDs:    parseIDList(c.Query("categories")),
		SubCategoryIDs: parseIDList(c.Query("sub_categories")),
		BrandIDs:       parseIDList(c.Query("brands")),
		InStock:        c.Query("in_stock") == "true",
		OutOfStock:     c.Query("out_of_stock") == "true",
		Sort:           strings.TrimSpace(c.Query("sort")),
	}
	// 价格区间需成对出现且 min <= max，否则忽略
	if minRaw, maxRaw := c.Query("min_price"), c.Query("max_price"); minRaw != "" && maxRaw != "" {
		min, errMin := decimal.NewFromString(minRaw)
		max, errMax := decimal.NewFromString(maxRaw)
		if errMin == nil && errMax == nil && min.LessThanOrEqual(max) {
			filter.MinPrice = &min
			filter.MaxPrice = &max
		}
	}

	products, err := h.ProductService.Filter(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "筛选商品失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// parseIDList 解析逗号分隔的 ID 列表，非法片段跳过
func parseIDList(raw string) []uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "无效的 ID", nil)
		return 0, false
	}
	return uint(id), true
}
