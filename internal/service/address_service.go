package service

import (
	"strings"

	"github.com/techmart-next/internal/constants"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"

	"gorm.io/gorm"
)

// AddAddressInput 新增地址输入
type AddAddressInput struct {
	UserID  uint
	Title   string
	Address string
	Phone   string
}

// AddressService 收货地址服务
// 每用户至多 constants.MaxAddressesPerUser 条地址，主地址至多一条。
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListByUser 获取用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.UserAddress, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.addressRepo.ListByUser(userID)
}

// Add 新增地址
// 超出数量上限返回 ErrAddressLimit；用户尚无主地址时新地址自动成为主地址。
func (s *AddressService) Add(input AddAddressInput) (*models.UserAddress, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Address = strings.TrimSpace(input.Address)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Address == "" {
		return nil, ErrInvalidInput
	}
	if input.Title == "" {
		input.Title = constants.DefaultAddressTitle
	}

	address := &models.UserAddress{
		UserID:  input.UserID,
		Title:   input.Title,
		Address: input.Address,
		Phone:   input.Phone,
	}
	err := s.addressRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.addressRepo.WithTx(tx)
		count, err := txRepo.CountByUser(input.UserID)
		if err != nil {
			return err
		}
		if count >= constants.MaxAddressesPerUser {
			return ErrAddressLimit
		}
		primary, err := txRepo.GetPrimary(input.UserID)
		if err != nil {
			return err
		}
		address.IsPrimary = primary == nil
		return txRepo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// SetPrimary 设置主地址
// 先全量降级再提升目标地址，单事务完成；目标不存在或归属他人时
// 提升影响 0 行，整个事务回滚，原有主地址保持不变。
func (s *AddressService) SetPrimary(userID, addressID uint) error {
	if userID == 0 || addressID == 0 {
		return ErrInvalidInput
	}
	return s.addressRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.addressRepo.WithTx(tx)
		if err := txRepo.DemoteAll(userID); err != nil {
			return err
		}
		affected, err := txRepo.Promote(userID, addressID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
