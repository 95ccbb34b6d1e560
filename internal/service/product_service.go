package service

import (
	"github.com/techmart-next/internal/constants"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"
)

// PriceRange 商品价格区间
type PriceRange struct {
	Min models.Money `json:"min"`
	Max models.Money `json:"max"`
}

// FilterOptions 筛选页可用选项
type FilterOptions struct {
	Categories    []models.Category    `json:"categories"`
	SubCategories []models.SubCategory `json:"sub_categories"`
	Brands        []models.Brand       `json:"brands"`
	PriceRange    PriceRange           `json:"price_range"`
}

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListHome 首页商品列表
func (s *ProductService) ListHome(sort string) ([]models.Product, error) {
	return s.productRepo.List(repository.ProductListFilter{
		Sort:         sort,
		Limit:        constants.HomeProductLimit,
		WithCategory: true,
	})
}

// ListNewest 最新上架商品
func (s *ProductService) ListNewest() ([]models.Product, error) {
	return s.productRepo.ListNewest(constants.FeaturedProductLimit)
}

// ListCheapest 价格最低商品
func (s *ProductService) ListCheapest() ([]models.Product, error) {
	return s.productRepo.ListCheapest(constants.FeaturedProductLimit)
}

// ListByCategory 按分类查询商品
func (s *ProductService) ListByCategory(categoryID uint) ([]models.Product, error) {
	if categoryID == 0 {
		return nil, ErrInvalidInput
	}
	return s.productRepo.ListByCategory(categoryID)
}

// Filter 按筛选条件查询商品
func (s *ProductService) Filter(filter repository.ProductListFilter) ([]models.Product, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// FilterOptions 获取筛选页可用选项（分类、品牌、价格区间）
func (s *ProductService) FilterOptions() (*FilterOptions, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	subCategories, err := s.categoryRepo.ListAllSubCategories()
	if err != nil {
		return nil, err
	}
	brands, err := s.brandRepo.List()
	if err != nil {
		return nil, err
	}
	minPrice, maxPrice, err := s.productRepo.PriceRange()
	if err != nil {
		return nil, err
	}
	return &FilterOptions{
		Categories:    categories,
		SubCategories: subCategories,
		Brands:        brands,
		PriceRange:    PriceRange{Min: minPrice, Max: maxPrice},
	}, nil
}
