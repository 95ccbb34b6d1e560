package models

import "time"

// UserAddress 用户收货地址表
// 每个用户最多 5 条地址，且最多一条 is_primary = true。
type UserAddress struct {
	ID        uint      `gorm:"primarykey" json:"id"`                   // 主键
	UserID    uint      `gorm:"not null;index" json:"user_id"`          // 用户ID
	Title     string    `gorm:"not null" json:"title"`                  // 地址标题
	Address   string    `gorm:"default:''" json:"address"`              // 地址内容
	Phone     string    `gorm:"default:''" json:"phone"`                // 联系电话
	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"` // 是否主地址
	CreatedAt time.Time `json:"created_at"`                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (UserAddress) TableName() string {
	return "user_addresses"
}
