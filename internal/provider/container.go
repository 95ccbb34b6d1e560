package provider

import (
	"github.com/techmart-next/internal/cache"
	"github.com/techmart-next/internal/config"
	"github.com/techmart-next/internal/logger"
	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"
	"github.com/techmart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo     repository.UserRepository
	AddressRepo  repository.AddressRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	BrandRepo    repository.BrandRepository
	CartRepo     repository.CartRepository

	// Services
	InventoryOracle *service.InventoryOracle
	CartService     *service.CartService
	UserAuthService *service.UserAuthService
	AddressService  *service.AddressService
	ProductService  *service.ProductService
	CatalogService  *service.CatalogService
	UploadService   *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	c.InventoryOracle = service.NewInventoryOracle(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.InventoryOracle)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.AddressRepo, c.CartService)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo)
	c.CatalogService = service.NewCatalogService(c.CategoryRepo)
	c.UploadService = service.NewUploadService(c.Config)
}
