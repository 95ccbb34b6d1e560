package models

import "time"

// CartLine 购物车行表
// 每行归属恰好一个所有者：user_id 与 guest_id 二选一。
// 历史版本存在两者皆空的"匿名共享"行，已废弃，新代码不再产生。
type CartLine struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	UserID    *uint     `gorm:"index:idx_cart_user_product" json:"user_id"`           // 用户ID（登录用户所有）
	GuestID   *string   `gorm:"type:varchar(64);index:idx_cart_guest_product" json:"guest_id"` // 游客ID（游客所有）
	ProductID uint      `gorm:"not null;index:idx_cart_user_product;index:idx_cart_guest_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                             // 数量（>= 1，0 即删除）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                           // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}
