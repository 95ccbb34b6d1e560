package service

import (
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"
)

// NavMenuEntry 导航菜单条目（分类及其子分类）
type NavMenuEntry struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	SubCategories []models.SubCategory `json:"sub_categories"`
}

// CatalogService 分类导航服务
type CatalogService struct {
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建分类导航服务
func NewCatalogService(categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo}
}

// ListCategories 获取全部分类
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// ListSubCategories 获取分类下的子分类
func (s *CatalogService) ListSubCategories(categoryID uint) ([]models.SubCategory, error) {
	if categoryID == 0 {
		return nil, ErrInvalidInput
	}
	return s.categoryRepo.ListSubCategories(categoryID)
}

// NavMenu 构建导航菜单：分类按序排列，子分类挂在各自分类下
func (s *CatalogService) NavMenu() ([]NavMenuEntry, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	subCategories, err := s.categoryRepo.ListAllSubCategories()
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint][]models.SubCategory, len(categories))
	for _, sub := range subCategories {
		grouped[sub.CategoryID] = append(grouped[sub.CategoryID], sub)
	}

	menu := make([]NavMenuEntry, 0, len(categories))
	for _, category := range categories {
		subs := grouped[category.ID]
		if subs == nil {
			subs = []models.SubCategory{}
		}
		menu = append(menu, NavMenuEntry{
			ID:            category.ID,
			Name:          category.Name,
			SubCategories: subs,
		})
	}
	return menu, nil
}
