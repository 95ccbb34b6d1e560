package models

import "time"

// UserProfile 用户资料表
type UserProfile struct {
	ID                uint       `gorm:"primarykey" json:"id"`               // 主键
	UserID            uint       `gorm:"uniqueIndex;not null" json:"user_id"` // 用户ID（一对一）
	FirstName         string     `gorm:"default:''" json:"first_name"`       // 名
	LastName          string     `gorm:"default:''" json:"last_name"`        // 姓
	DateOfBirth       *time.Time `json:"date_of_birth"`                      // 出生日期
	ProfilePictureURL string     `gorm:"default:''" json:"profile_picture_url"` // 头像地址
	CreatedAt         time.Time  `json:"created_at"`                         // 创建时间
	UpdatedAt         time.Time  `json:"updated_at"`                         // 更新时间
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}
