package models

// CartOwner 购物车所有者（登录用户或游客，二选一）
// 由请求边界解析一次后显式传递，引擎内部不读取任何全局会话状态。
type CartOwner struct {
	UserID  uint
	GuestID string
}

// UserCartOwner 创建登录用户所有者
func UserCartOwner(userID uint) CartOwner {
	return CartOwner{UserID: userID}
}

// GuestCartOwner 创建游客所有者
func GuestCartOwner(guestID string) CartOwner {
	return CartOwner{GuestID: guestID}
}

// IsUser 是否为登录用户所有
func (o CartOwner) IsUser() bool {
	return o.UserID != 0
}

// IsGuest 是否为游客所有
func (o CartOwner) IsGuest() bool {
	return o.UserID == 0 && o.GuestID != ""
}

// IsZero 是否未解析出任何所有者
func (o CartOwner) IsZero() bool {
	return o.UserID == 0 && o.GuestID == ""
}
