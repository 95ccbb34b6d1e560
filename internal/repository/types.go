package repository

import (
	"github.com/techmart-next/internal/constants"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
// 所有条件都是类型化字段，SQL 片段由仓库内部的枚举映射拼装，
// 不以任何形式拼接调用方原始字符串。
type ProductListFilter struct {
	CategoryIDs    []uint
	SubCategoryIDs []uint
	BrandIDs       []uint
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	InStock        bool
	OutOfStock     bool
	Sort           string // constants.ProductSort* 之一
	Limit          int
	WithCategory   bool
}

// productSortClauses 排序键到 ORDER BY 子句的枚举映射
var productSortClauses = map[string]string{
	constants.ProductSortDefault:   "products.id asc",
	constants.ProductSortAlphaAsc:  "products.name asc",
	constants.ProductSortAlphaDesc: "products.name desc",
	constants.ProductSortPriceAsc:  "products.price asc",
	constants.ProductSortPriceDesc: "products.price desc",
	constants.ProductSortDateAsc:   "products.created_at asc",
	constants.ProductSortDateDesc:  "products.created_at desc",
}

// ResolveProductSort 将排序键解析为 ORDER BY 子句，未知键回退默认排序
func ResolveProductSort(sort string) string {
	if clause, ok := productSortClauses[sort]; ok {
		return clause
	}
	return productSortClauses[constants.ProductSortDefault]
}
