package service

import (
	"time"

	"github.com/techmart-next/internal/logger"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"
)

// CartLineDetail 购物车行详情（联查商品后的响应结构）
type CartLineDetail struct {
	ID          uint         `json:"id"`
	ProductID   uint         `json:"product_id"`
	Quantity    int          `json:"quantity"`
	Name        string       `json:"name"`
	Price       models.Money `json:"price"`
	ImageURL    string       `json:"image_url"`
	Description string       `json:"description"`
	Stock       int          `json:"stock"`
}

// AddCartLineInput 加购输入
type AddCartLineInput struct {
	Owner     models.CartOwner
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
// 所有操作以显式 Owner 为键：同一 (owner, product) 至多一行（加购合并），
// 数量变更前都经过库存检查，所有权不匹配一律按不存在处理。
type CartService struct {
	cartRepo  repository.CartRepository
	inventory *InventoryOracle
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, inventory *InventoryOracle) *CartService {
	return &CartService{
		cartRepo:  cartRepo,
		inventory: inventory,
	}
}

// Add 加购商品（已在购物车中则合并数量）
func (s *CartService) Add(input AddCartLineInput) error {
	if input.Owner.IsZero() {
		return ErrOwnerRequired
	}
	if input.ProductID == 0 || input.Quantity < 1 {
		return ErrInvalidInput
	}

	status, _, err := s.inventory.CheckAvailable(input.ProductID, input.Quantity)
	if err != nil {
		return err
	}
	switch status {
	case StockNotFound:
		return ErrProductNotFound
	case StockInsufficient:
		return ErrInsufficientStock
	}

	existing, err := s.cartRepo.FindByOwnerAndProduct(input.Owner, input.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		// 合并累加由单条条件更新完成，0 行受影响说明
		// 累加后的总量超过了此刻库存。
		affected, err := s.cartRepo.AddQuantityWithinStock(existing.ID, input.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		return nil
	}

	now := time.Now()
	line := &models.CartLine{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Owner.IsUser() {
		userID := input.Owner.UserID
		line.UserID = &userID
	} else {
		guestID := input.Owner.GuestID
		line.GuestID = &guestID
	}
	return s.cartRepo.Create(line)
}

// Update 覆盖购物车行数量（绝对值，不是增量）
func (s *CartService) Update(owner models.CartOwner, cartLineID uint, quantity int) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}
	if cartLineID == 0 || quantity < 1 {
		return ErrInvalidInput
	}

	line, err := s.cartRepo.GetOwned(cartLineID, owner)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartLineNotFound
	}

	status, _, err := s.inventory.CheckAvailable(line.ProductID, quantity)
	if err != nil {
		return err
	}
	switch status {
	case StockNotFound:
		return ErrProductNotFound
	case StockInsufficient:
		return ErrInsufficientStock
	}

	affected, err := s.cartRepo.SetQuantityWithinStock(line.ID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 检查和写入之间库存被并发压缩
		return ErrInsufficientStock
	}
	return nil
}

// Remove 删除购物车行
// 不存在或归属他人的行统一返回未找到，不做静默成功。
func (s *CartService) Remove(owner models.CartOwner, cartLineID uint) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}
	if cartLineID == 0 {
		return ErrInvalidInput
	}
	affected, err := s.cartRepo.DeleteOwned(cartLineID, owner)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

// List 获取所有者购物车（联查商品现价/库存）
func (s *CartService) List(owner models.CartOwner) ([]CartLineDetail, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}
	lines, err := s.cartRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}

	details := make([]CartLineDetail, 0, len(lines))
	for _, line := range lines {
		product := line.Product
		if product == nil || product.ID == 0 {
			// 商品已下架/删除的残留行，读取时顺手清掉
			if _, err := s.cartRepo.DeleteOwned(line.ID, owner); err != nil {
				logger.Warnw("cart_stale_line_cleanup_failed", "cart_line_id", line.ID, "error", err)
			}
			continue
		}
		details = append(details, CartLineDetail{
			ID:          line.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Name:        product.Name,
			Price:       product.Price,
			ImageURL:    product.ImageURL,
			Description: product.Description,
			Stock:       product.Stock,
		})
	}
	return details, nil
}

// ClearGuest 清空游客购物车（登录时调用）
// 只删除，不把游客行并入用户购物车；历史版本把 NULL 所有者行
// 当作"任意游客"共享处理，该语义已废弃，这里不再兼容。
func (s *CartService) ClearGuest(guestID string) (int64, error) {
	if guestID == "" {
		return 0, ErrInvalidInput
	}
	deleted, err := s.cartRepo.ClearByGuest(guestID)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Infow("guest_cart_cleared", "guest_id", guestID, "deleted", deleted)
	}
	return deleted, nil
}
