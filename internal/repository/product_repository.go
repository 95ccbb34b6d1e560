package repository

import (
	"errors"

	"github.com/techmart-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, error)
	ListNewest(limit int) ([]models.Product, error)
	ListCheapest(limit int) ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	PriceRange() (models.Money, models.Money, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Preload("SubCategory").Preload("Brand").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 按过滤条件查询商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})

	if len(filter.CategoryIDs) > 0 {
		query = query.Where("products.category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.SubCategoryIDs) > 0 {
		query = query.Where("products.sub_category_id IN ?", filter.SubCategoryIDs)
	}
	if len(filter.BrandIDs) > 0 {
		query = query.Where("products.brand_id IN ?", filter.BrandIDs)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.LessThanOrEqual(*filter.MaxPrice) {
		query = query.Where("products.price BETWEEN ? AND ?", *filter.MinPrice, *filter.MaxPrice)
	}
	// 可用性条件：两者都勾选时等价于不过滤
	if filter.InStock && !filter.OutOfStock {
		query = query.Where("products.stock > 0")
	}
	if filter.OutOfStock && !filter.InStock {
		query = query.Where("products.stock = 0")
	}

	query = query.Order(ResolveProductSort(filter.Sort))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.WithCategory {
		query = query.Preload("Category").Preload("SubCategory").Preload("Brand")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListNewest 查询最新上架商品
func (r *GormProductRepository) ListNewest(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Order("created_at desc").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCheapest 查询价格最低商品
func (r *GormProductRepository) ListCheapest(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Order("price asc").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory 按分类查询商品
func (r *GormProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// PriceRange 查询全部商品的价格区间
func (r *GormProductRepository) PriceRange() (models.Money, models.Money, error) {
	var row struct {
		MinPrice models.Money
		MaxPrice models.Money
	}
	err := r.db.Model(&models.Product{}).
		Select("COALESCE(MIN(price), 0) AS min_price, COALESCE(MAX(price), 0) AS max_price").
		Scan(&row).Error
	if err != nil {
		return models.Money{}, models.Money{}, err
	}
	return row.MinPrice, row.MaxPrice, nil
}
