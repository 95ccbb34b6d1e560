package service

import "errors"

// 业务哨兵错误
// 在 handler 边界统一映射为响应码，内部细节不对外透出。
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrOwnerRequired      = errors.New("cart owner required")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartLineNotFound   = errors.New("cart line not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNotFound           = errors.New("record not found")
	ErrUserExists         = errors.New("username or email already exists")
	ErrAddressLimit       = errors.New("address limit exceeded")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
