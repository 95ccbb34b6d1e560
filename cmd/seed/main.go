package main

import (
	"github.com/techmart-next/internal/config"
	"github.com/techmart-next/internal/logger"
	"github.com/techmart-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 分类与子分类
	categories := []string{"Electronics", "Home & Kitchen", "Sports"}
	categoryIDs := map[string]uint{}
	for _, name := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			category := models.Category{Name: name}
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", name, err)
				continue
			}
			categoryIDs[name] = category.ID
			stdLog.Printf("Created category: %s", name)
		} else {
			categoryIDs[name] = existing.ID
			stdLog.Printf("Category already exists: %s", name)
		}
	}

	subCategories := map[string][]string{
		"Electronics":    {"Phones", "Laptops", "Audio"},
		"Home & Kitchen": {"Appliances", "Cookware"},
		"Sports":         {"Fitness", "Outdoor"},
	}
	for categoryName, names := range subCategories {
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			continue
		}
		for _, name := range names {
			var existing models.SubCategory
			if err := models.DB.Where("category_id = ? AND name = ?", categoryID, name).First(&existing).Error; err != nil {
				sub := models.SubCategory{CategoryID: categoryID, Name: name}
				if err := models.DB.Create(&sub).Error; err != nil {
					stdLog.Printf("Failed to create sub category %s: %v", name, err)
				} else {
					stdLog.Printf("Created sub category: %s/%s", categoryName, name)
				}
			}
		}
	}

	// 品牌
	brands := []string{"Aurora", "Nimbus", "Vertex"}
	brandIDs := map[string]uint{}
	for _, name := range brands {
		var existing models.Brand
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			brand := models.Brand{Name: name}
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", name, err)
				continue
			}
			brandIDs[name] = brand.ID
			stdLog.Printf("Created brand: %s", name)
		} else {
			brandIDs[name] = existing.ID
		}
	}

	// 商品
	auroraID := brandIDs["Aurora"]
	nimbusID := brandIDs["Nimbus"]
	vertexID := brandIDs["Vertex"]
	products := []models.Product{
		{
			Name:        "Wireless Bluetooth Earphones",
			Description: "High quality sound, long battery life, comfortable to wear.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Stock:       50,
			ImageURL:    "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			CategoryID:  categoryIDs["Electronics"],
			BrandID:     &auroraID,
		},
		{
			Name:        "Smart Watch Pro",
			Description: "Health tracking, notifications and a week of battery.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
			Stock:       30,
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800",
			CategoryID:  categoryIDs["Electronics"],
			BrandID:     &nimbusID,
		},
		{
			Name:        "Stainless Steel Cookware Set",
			Description: "Ten piece set for everyday cooking.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(149.50)),
			Stock:       20,
			ImageURL:    "https://images.unsplash.com/photo-1584990347449-a2d4c2c044c0?w=800",
			CategoryID:  categoryIDs["Home & Kitchen"],
			BrandID:     &vertexID,
		},
		{
			Name:        "Yoga Mat",
			Description: "Non-slip surface, easy to clean.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.90)),
			Stock:       100,
			ImageURL:    "https://images.unsplash.com/photo-1599058917212-d750089bc07e?w=800",
			CategoryID:  categoryIDs["Sports"],
			BrandID:     &vertexID,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	stdLog.Printf("Seed finished")
}
