package repository

import (
	"errors"

	"github.com/techmart-next/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.UserAddress, error)
	CountByUser(userID uint) (int64, error)
	GetPrimary(userID uint) (*models.UserAddress, error)
	Create(address *models.UserAddress) error
	Update(address *models.UserAddress) error
	DemoteAll(userID uint) error
	Promote(userID, addressID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAddressRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListByUser 获取用户全部地址
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// CountByUser 统计用户地址数量
func (r *GormAddressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.UserAddress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetPrimary 获取用户主地址
func (r *GormAddressRepository) GetPrimary(userID uint) (*models.UserAddress, error) {
	var address models.UserAddress
	err := r.db.Where("user_id = ? AND is_primary = ?", userID, true).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.UserAddress) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormAddressRepository) Update(address *models.UserAddress) error {
	return r.db.Save(address).Error
}

// DemoteAll 取消用户全部主地址标记
func (r *GormAddressRepository) DemoteAll(userID uint) error {
	return r.db.Model(&models.UserAddress{}).
		Where("user_id = ?", userID).
		Update("is_primary", false).Error
}

// Promote 将指定地址设为主地址（限定归属用户）
func (r *GormAddressRepository) Promote(userID, addressID uint) (int64, error) {
	result := r.db.Model(&models.UserAddress{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Update("is_primary", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
