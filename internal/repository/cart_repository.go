package repository

import (
	"errors"
	"time"

	"github.com/techmart-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(owner models.CartOwner) ([]models.CartLine, error)
	GetOwned(id uint, owner models.CartOwner) (*models.CartLine, error)
	FindByOwnerAndProduct(owner models.CartOwner, productID uint) (*models.CartLine, error)
	Create(line *models.CartLine) error
	AddQuantityWithinStock(lineID uint, delta int) (int64, error)
	SetQuantityWithinStock(lineID uint, quantity int) (int64, error)
	DeleteOwned(id uint, owner models.CartOwner) (int64, error)
	ClearByGuest(guestID string) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ownerScope 按所有者限定查询范围
// 所有者必须是登录用户或游客之一，空所有者由服务层提前拒绝。
func ownerScope(db *gorm.DB, owner models.CartOwner) *gorm.DB {
	if owner.IsUser() {
		return db.Where("user_id = ?", owner.UserID)
	}
	return db.Where("guest_id = ?", owner.GuestID)
}

// ListByOwner 获取所有者的全部购物车行
func (r *GormCartRepository) ListByOwner(owner models.CartOwner) ([]models.CartLine, error) {
	var lines []models.CartLine
	query := ownerScope(r.db.Preload("Product"), owner)
	if err := query.Order("id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// GetOwned 按 ID 获取所有者自己的购物车行
// 他人的行与不存在的行同样返回 nil，调用方无法区分（避免存在性泄露）。
func (r *GormCartRepository) GetOwned(id uint, owner models.CartOwner) (*models.CartLine, error) {
	var line models.CartLine
	err := ownerScope(r.db, owner).Where("id = ?", id).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// FindByOwnerAndProduct 查找所有者购物车中某商品的行
func (r *GormCartRepository) FindByOwnerAndProduct(owner models.CartOwner, productID uint) (*models.CartLine, error) {
	var line models.CartLine
	err := ownerScope(r.db, owner).Where("product_id = ?", productID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Create 插入新购物车行
func (r *GormCartRepository) Create(line *models.CartLine) error {
	return r.db.Create(line).Error
}

// AddQuantityWithinStock 合并加购：在当前库存限额内累加数量
// 条件更新把库存校验和数量写入合并为单条语句，两次并发加购
// 不会把同一行累加到超过当时的库存（返回受影响行数，0 表示超限）。
func (r *GormCartRepository) AddQuantityWithinStock(lineID uint, delta int) (int64, error) {
	if lineID == 0 || delta <= 0 {
		return 0, errors.New("invalid cart merge params")
	}
	result := r.db.Model(&models.CartLine{}).
		Where("id = ? AND quantity + ? <= (SELECT stock FROM products WHERE products.id = cart_lines.product_id AND products.deleted_at IS NULL)", lineID, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetQuantityWithinStock 绝对数量更新：在当前库存限额内覆盖数量
func (r *GormCartRepository) SetQuantityWithinStock(lineID uint, quantity int) (int64, error) {
	if lineID == 0 || quantity <= 0 {
		return 0, errors.New("invalid cart update params")
	}
	result := r.db.Model(&models.CartLine{}).
		Where("id = ? AND ? <= (SELECT stock FROM products WHERE products.id = cart_lines.product_id AND products.deleted_at IS NULL)", lineID, quantity).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOwned 删除所有者自己的购物车行
func (r *GormCartRepository) DeleteOwned(id uint, owner models.CartOwner) (int64, error) {
	result := ownerScope(r.db, owner).Where("id = ?", id).Delete(&models.CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ClearByGuest 清空游客购物车
// 无条件删除该游客的全部行；不存在的游客 ID 删除 0 行，同样视为成功。
func (r *GormCartRepository) ClearByGuest(guestID string) (int64, error) {
	result := r.db.Where("guest_id = ?", guestID).Delete(&models.CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
