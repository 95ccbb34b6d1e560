package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/techmart-next/internal/config"
	"github.com/techmart-next/internal/constants"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	cartService *CartService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, addressRepo repository.AddressRepository, cartService *CartService) *UserAuthService {
	return &UserAuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		cartService: cartService,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Address     string
	Phone       string
}

// UpdateProfileInput 资料更新输入
// 指针字段为 nil 表示不修改该字段。
type UpdateProfileInput struct {
	UserID            uint
	Username          *string
	Email             *string
	FirstName         *string
	LastName          *string
	DateOfBirth       *time.Time
	ProfilePictureURL *string
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 用户注册
// 用户、资料、可选首条地址在同一事务内创建；首条地址自动为主地址。
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	username := strings.TrimSpace(input.Username)
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if username == "" {
		return nil, "", time.Time{}, ErrInvalidInput
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.ExistsByUsernameOrEmail(username, normalized, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist {
		return nil, "", time.Time{}, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        normalized,
		PasswordHash: string(hashedPassword),
		Role:         constants.UserRoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		txUserRepo := s.userRepo.WithTx(tx)
		if err := txUserRepo.Create(user); err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID:      user.ID,
			FirstName:   strings.TrimSpace(input.FirstName),
			LastName:    strings.TrimSpace(input.LastName),
			DateOfBirth: input.DateOfBirth,
		}
		if err := txUserRepo.SaveProfile(profile); err != nil {
			return err
		}
		if address := strings.TrimSpace(input.Address); address != "" {
			txAddressRepo := s.addressRepo.WithTx(tx)
			return txAddressRepo.Create(&models.UserAddress{
				UserID:    user.ID,
				Title:     constants.DefaultAddressTitle,
				Address:   address,
				Phone:     strings.TrimSpace(input.Phone),
				IsPrimary: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login 用户登录
// 游客购物车不并入用户购物车：guestID 非空时直接清空该游客的行。
func (s *UserAuthService) Login(email, password, guestID string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if guestID != "" {
		// 清空失败不影响登录本身
		if _, err := s.cartService.ClearGuest(guestID); err != nil {
			return user, token, expiresAt, nil
		}
	}
	return user, token, expiresAt, nil
}

// GetProfile 获取用户（含资料与地址）
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByIDWithProfile(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户资料
// 返回被替换掉的旧头像地址（若有），由调用方在成功后清理文件。
func (s *UserAuthService) UpdateProfile(input UpdateProfileInput) (*models.User, string, error) {
	if input.UserID == 0 {
		return nil, "", ErrNotFound
	}
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrNotFound
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if trimmed == "" {
			return nil, "", ErrInvalidInput
		}
		user.Username = trimmed
	}
	if input.Email != nil {
		normalized, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, "", err
		}
		user.Email = normalized
	}
	if input.Username != nil || input.Email != nil {
		taken, err := s.userRepo.ExistsByUsernameOrEmail(user.Username, user.Email, user.ID)
		if err != nil {
			return nil, "", err
		}
		if taken {
			return nil, "", ErrUserExists
		}
	}

	replacedPicture := ""
	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		txUserRepo := s.userRepo.WithTx(tx)
		user.UpdatedAt = time.Now()
		if err := txUserRepo.Update(user); err != nil {
			return err
		}

		profile, err := txUserRepo.GetProfile(user.ID)
		if err != nil {
			return err
		}
		if profile == nil {
			profile = &models.UserProfile{UserID: user.ID}
		}
		if input.FirstName != nil {
			profile.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			profile.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.DateOfBirth != nil {
			profile.DateOfBirth = input.DateOfBirth
		}
		if input.ProfilePictureURL != nil {
			if profile.ProfilePictureURL != "" && profile.ProfilePictureURL != *input.ProfilePictureURL {
				replacedPicture = profile.ProfilePictureURL
			}
			profile.ProfilePictureURL = *input.ProfilePictureURL
		}
		return txUserRepo.SaveProfile(profile)
	})
	if err != nil {
		return nil, "", err
	}

	updated, err := s.userRepo.GetByIDWithProfile(user.ID)
	if err != nil {
		return nil, "", err
	}
	return updated, replacedPicture, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidInput
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidInput
	}
	return normalized, nil
}
