package service

import (
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"
)

// StockStatus 库存检查结果
type StockStatus int

const (
	StockAvailable StockStatus = iota
	StockInsufficient
	StockNotFound
)

// InventoryOracle 库存检查器
// 纯咨询式：只回答"此刻数量 Q 是否可满足"，不预占、不加锁，
// 每次购物车变更前都重新查询。
type InventoryOracle struct {
	productRepo repository.ProductRepository
}

// NewInventoryOracle 创建库存检查器
func NewInventoryOracle(productRepo repository.ProductRepository) *InventoryOracle {
	return &InventoryOracle{productRepo: productRepo}
}

// CheckAvailable 检查商品当前库存能否满足请求数量
func (o *InventoryOracle) CheckAvailable(productID uint, quantity int) (StockStatus, *models.Product, error) {
	product, err := o.productRepo.GetByID(productID)
	if err != nil {
		return StockNotFound, nil, err
	}
	if product == nil {
		return StockNotFound, nil, nil
	}
	if quantity > product.Stock {
		return StockInsufficient, product, nil
	}
	return StockAvailable, product, nil
}
