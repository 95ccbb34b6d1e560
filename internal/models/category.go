package models

import "time"

// Category 商品分类表
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`        // 主键
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 分类名称
	CreatedAt time.Time `json:"created_at"`                  // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                  // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// SubCategory 商品子分类表
type SubCategory struct {
	ID         uint      `gorm:"primarykey" json:"id"`          // 主键
	CategoryID uint      `gorm:"not null;index" json:"category_id"` // 所属分类ID
	Name       string    `gorm:"not null" json:"name"`          // 子分类名称
	CreatedAt  time.Time `json:"created_at"`                    // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (SubCategory) TableName() string {
	return "sub_categories"
}
