package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                       // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`       // 用户名
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`          // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                          // 密码哈希（不返回给前端）
	Role         string         `gorm:"type:varchar(20);default:'customer'" json:"role"` // 角色（customer/admin）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间

	Profile   *UserProfile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`   // 资料信息
	Addresses []UserAddress `gorm:"foreignKey:UserID" json:"addresses,omitempty"` // 收货地址
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
