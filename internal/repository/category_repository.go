package repository

import (
	"github.com/techmart-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	ListSubCategories(categoryID uint) ([]models.SubCategory, error)
	ListAllSubCategories() ([]models.SubCategory, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 获取全部分类
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListSubCategories 获取分类下的子分类
func (r *GormCategoryRepository) ListSubCategories(categoryID uint) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	if err := r.db.Where("category_id = ?", categoryID).Order("id asc").Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

// ListAllSubCategories 获取全部子分类
func (r *GormCategoryRepository) ListAllSubCategories() ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	if err := r.db.Order("id asc").Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}
