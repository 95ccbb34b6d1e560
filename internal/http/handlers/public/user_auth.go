package public

import (
	"errors"
	"strings"
	"time"

	"github.com/techmart-next/internal/constants"
	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	GuestID  string `json:"guest_id"`
}

// AddAddressRequest 新增地址请求
type AddAddressRequest struct {
	Title   string `json:"title"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone"`
}

// SetPrimaryAddressRequest 设置主地址请求
type SetPrimaryAddressRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// UserResponse 用户响应结构
type UserResponse struct {
	ID        uint                 `json:"id"`
	Username  string               `json:"username"`
	Email     string               `json:"email"`
	Role      string               `json:"role"`
	Profile   *models.UserProfile  `json:"profile,omitempty"`
	Addresses []models.UserAddress `json:"addresses,omitempty"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Profile:   user.Profile,
		Addresses: user.Addresses,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	var dob *time.Time
	if raw := strings.TrimSpace(req.DateOfBirth); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "出生日期格式错误", nil)
			return
		}
		dob = &parsed
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			respondError(c, response.CodeConflict, "用户名或邮箱已被占用", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "注册失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       toUserResponse(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	guestID := strings.TrimSpace(req.GuestID)
	if guestID == "" {
		guestID = guestIDFromRequest(c)
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, guestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "邮箱或密码错误", nil)
		default:
			respondError(c, response.CodeInternal, "登录失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       toUserResponse(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Logout 用户登出
// JWT 无状态，登出由客户端丢弃 token 完成，这里只返回成功。
func (h *Handler) Logout(c *gin.Context) {
	response.SuccessWithMsg(c, "已退出登录", nil)
}

// Me 获取当前用户信息
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "用户不存在", nil)
		default:
			respondError(c, response.CodeInternal, "获取用户信息失败", err)
		}
		return
	}
	response.Success(c, toUserResponse(user))
}

// UpdateProfile 更新用户资料（multipart，头像文件可选）
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	input := service.UpdateProfileInput{UserID: uid}
	if value, exists := c.GetPostForm("username"); exists {
		input.Username = &value
	}
	if value, exists := c.GetPostForm("email"); exists {
		input.Email = &value
	}
	if value, exists := c.GetPostForm("first_name"); exists {
		input.FirstName = &value
	}
	if value, exists := c.GetPostForm("last_name"); exists {
		input.LastName = &value
	}
	if value, exists := c.GetPostForm("date_of_birth"); exists {
		if raw := strings.TrimSpace(value); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(c, response.CodeBadRequest, "出生日期格式错误", nil)
				return
			}
			input.DateOfBirth = &parsed
		}
	}

	savedPicture := ""
	if file, err := c.FormFile("profile_picture"); err == nil && file != nil {
		url, err := h.UploadService.SaveFile(file, constants.UploadSceneProfilePicture)
		if err != nil {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		savedPicture = url
		input.ProfilePictureURL = &savedPicture
	}

	user, replacedPicture, err := h.UserAuthService.UpdateProfile(input)
	if err != nil {
		// 资料写入失败时回收本次已保存的头像文件
		if savedPicture != "" {
			h.UploadService.RemoveFile(savedPicture)
		}
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "用户不存在", nil)
		case errors.Is(err, service.ErrUserExists):
			respondError(c, response.CodeConflict, "用户名或邮箱已被占用", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "更新资料失败", err)
		}
		return
	}
	if replacedPicture != "" {
		h.UploadService.RemoveFile(replacedPicture)
	}
	response.Success(c, toUserResponse(user))
}

// ListAddresses 获取当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取地址失败", err)
		return
	}
	response.Success(c, gin.H{"addresses": addresses})
}

// AddAddress 新增收货地址
func (h *Handler) AddAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	address, err := h.AddressService.Add(service.AddAddressInput{
		UserID:  uid,
		Title:   req.Title,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressLimit):
			respondError(c, response.CodeConflict, "地址数量已达上限", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "新增地址失败", err)
		}
		return
	}
	response.Success(c, address)
}

// SetPrimaryAddress 设置主地址
func (h *Handler) SetPrimaryAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SetPrimaryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.AddressService.SetPrimary(uid, req.AddressID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "地址不存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		default:
			respondError(c, response.CodeInternal, "设置主地址失败", err)
		}
		return
	}
	response.SuccessWithMsg(c, "主地址已更新", nil)
}
