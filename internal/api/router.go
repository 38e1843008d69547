package api

import (
	"context"
	"net/http"
	"time"

	authHandler "recipe-aggregator/internal/api/handlers/auth"
	favoriteHandler "recipe-aggregator/internal/api/handlers/favorite"
	"recipe-aggregator/internal/api/handlers/health"
	recipeHandler "recipe-aggregator/internal/api/handlers/recipe"
	"recipe-aggregator/internal/api/middleware"
	"recipe-aggregator/internal/core/aggregate"
	"recipe-aggregator/internal/core/auth"
	"recipe-aggregator/internal/core/favorite"
	"recipe-aggregator/internal/core/source/cocktail"
	"recipe-aggregator/internal/core/source/kids"
	"recipe-aggregator/internal/core/source/primary"
	"recipe-aggregator/internal/infrastructure/config"
	"recipe-aggregator/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, favorites *favorite.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 寫入請求去重（連點收藏切換）
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	router.Use(dedup.Middleware())

	common.LogInfo("Initializing services",
		zap.String("primary_base_url", cfg.Primary.BaseURL),
		zap.String("cocktail_base_url", cfg.Cocktail.BaseURL),
		zap.String("kids_base_url", cfg.Kids.BaseURL),
		zap.Int("random_count", cfg.Random.Count),
	)

	// 初始化來源 adapter（顯式建構、注入，不使用全局單例）
	primaryClient := primary.NewClient(cfg)
	cocktailClient := cocktail.NewClient(cfg)
	kidsClient := kids.NewClient(cfg)

	// 初始化聚合服務
	aggregateSvc := aggregate.NewService(primaryClient, cocktailClient, kidsClient, favorites, cfg.Random.Count)

	// 初始化驗證服務
	authSvc := auth.NewService(primaryClient)

	// 全局中間件：設置超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(favorites))
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(aggregateSvc)
		favoritesH := favoriteHandler.NewHandler(aggregateSvc)
		authH := authHandler.NewHandler(authSvc)

		// 食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.HandleFetch)
			recipeGroup.GET("/search", recipes.HandleSearch)
			recipeGroup.GET("/tagged", recipes.HandleTagged)
			recipeGroup.GET("/current", recipes.HandleCurrent)
			recipeGroup.POST("", recipes.HandleCreate)
			recipeGroup.PUT("/:id", recipes.HandleUpdate)
			recipeGroup.DELETE("/:id", recipes.HandleDelete)
		}

		// 收藏相關路由
		favoriteGroup := api.Group("/favorites")
		{
			favoriteGroup.GET("", favoritesH.HandleList)
			favoriteGroup.POST("/:id/toggle", favoritesH.HandleToggle)
		}

		// 驗證相關路由
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authH.HandleLogin)
			authGroup.POST("/register", authH.HandleRegister)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
