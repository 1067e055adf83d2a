package api

import (
	"time"

	"fridge-recipes/internal/api/handlers/health"
	recipeHandler "fridge-recipes/internal/api/handlers/recipe"
	"fridge-recipes/internal/api/middleware"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由所需的服務
type Services struct {
	Recipes       recipeHandler.RecipeGenerator
	Ingredients   recipeHandler.IngredientAnalyzer
	Catalog       recipeHandler.CatalogReader
	LLMAvailable  bool
	ReadyChecks   map[string]health.Checker
	HealthDetails map[string]func() any // 於 /health 附帶的狀態，例如 LLM 隊列
	Dedup         *middleware.Deduplicator // nil 時不做請求去重
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("llm_available", svc.LLMAvailable),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	healthHandler := health.NewHandler(cfg.App.Version, svc.LLMAvailable, svc.ReadyChecks, svc.HealthDetails)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}
	if svc.Dedup != nil {
		api.Use(svc.Dedup.Middleware())
	}

	h := recipeHandler.NewHandler(svc.Recipes, svc.Ingredients, svc.Catalog, cfg.App.Debug)

	recipes := api.Group("/recipes")
	{
		recipes.POST("/generate", h.HandleGenerate)
		recipes.GET("/search", h.HandleSearch)
		recipes.GET("/categories", h.HandleCategories)
		recipes.GET("/:id", h.HandleGet)
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.POST("/analyze", h.HandleAnalyze)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("dedup_enabled", svc.Dedup != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)
	return router
}
