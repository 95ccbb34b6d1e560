package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                             // 主键
	Name          string         `gorm:"not null;index" json:"name"`                       // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                     // 商品描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	Stock         int            `gorm:"not null;default:0" json:"stock"`                  // 库存数量
	ImageURL      string         `gorm:"default:''" json:"image_url"`                      // 图片地址
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                // 分类ID
	SubCategoryID *uint          `gorm:"index" json:"sub_category_id"`                     // 子分类ID
	BrandID       *uint          `gorm:"index" json:"brand_id"`                            // 品牌ID
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间

	// 关联
	Category    Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`        // 分类信息
	SubCategory *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"` // 子分类信息
	Brand       *Brand       `gorm:"foreignKey:BrandID" json:"brand,omitempty"`              // 品牌信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
