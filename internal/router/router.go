package router

import (
	"fmt"
	"strings"

	"github.com/techmart-next/internal/cache"
	"github.com/techmart-next/internal/config"
	publichandlers "github.com/techmart-next/internal/http/handlers/public"
	"github.com/techmart-next/internal/http/response"
	"github.com/techmart-next/internal/logger"
	"github.com/techmart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tm"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	{
		// 商品与分类（公开）
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/newest", publicHandler.ListNewestProducts)
		api.GET("/products/cheapest", publicHandler.ListCheapestProducts)
		api.GET("/products/category/:id", publicHandler.ListProductsByCategory)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/categories", publicHandler.ListCategories)
		api.GET("/categories/:id/subcategories", publicHandler.ListSubCategories)
		api.GET("/filter-data", publicHandler.GetFilterData)
		api.GET("/filter-data/products", publicHandler.FilterProducts)
		api.GET("/nav-menu", publicHandler.GetNavMenu)

		// 购物车（登录用户与游客共用，token 可选）
		cart := api.Group("/cart")
		cart.Use(OptionalUserJWTMiddleware(cfg.JWT.SecretKey))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/add", publicHandler.AddCartLine)
			cart.PUT("/update", publicHandler.UpdateCartLine)
			cart.DELETE("/remove", publicHandler.RemoveCartLine)
		}
		// 结算页与游客购物车清理（仅登录用户）
		userCart := api.Group("/cart")
		userCart.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			userCart.GET("/checkout", publicHandler.GetCheckoutCart)
			userCart.POST("/clear-guest", publicHandler.ClearGuestCart)
		}

		// 用户认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/logout", publicHandler.Logout)

			me := auth.Group("")
			me.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
			{
				me.GET("/me", publicHandler.Me)
				me.GET("/profile", publicHandler.Me)
				me.PUT("/profile", publicHandler.UpdateProfile)
				me.GET("/address", publicHandler.ListAddresses)
				me.POST("/address", publicHandler.AddAddress)
				me.POST("/address/primary", publicHandler.SetPrimaryAddress)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	return r
}
