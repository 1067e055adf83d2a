package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridge-recipes/internal/api"
	"fridge-recipes/internal/api/handlers/health"
	"fridge-recipes/internal/api/middleware"
	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/core/ai/service"
	"fridge-recipes/internal/core/catalog"
	"fridge-recipes/internal/core/image"
	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/infrastructure/telemetry"
	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
		zap.String("llm_api_key", config.MaskAPIKey(cfg.LLM.APIKey)),
		zap.Bool("llm_available", cfg.LLMAvailable()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.App)
	if err != nil {
		common.LogFatal("Failed to initialize tracing", zap.Error(err))
	}

	store, err := cache.New(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}

	var llm provider.Provider
	if cfg.LLMAvailable() {
		if llm, err = service.NewProvider(cfg); err != nil {
			common.LogFatal("Failed to initialize llm provider", zap.Error(err))
		}
	} else {
		common.LogWarn("LLM 未啟用，僅使用目錄與靜態備援")
	}
	aiService := service.NewService(cfg, llm, store)

	cat, err := catalog.New()
	if err != nil {
		common.LogFatal("Failed to load recipe catalog", zap.Error(err))
	}

	recipeSvc := recipe.NewRecipeService(aiService, cat, aiService.Available(), recipe.Options{
		DefaultMaxTime: cfg.Recipes.DefaultMaxTime,
		TopN:           cfg.Recipes.TopN,
	})
	ingredientSvc := recipe.NewIngredientService(aiService, image.NewService(cfg.Image.MaxSizeBytes), aiService.Available())

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Close()

	healthDetails := map[string]func() any{
		"llm_queue": func() any { return aiService.QueueStatus() },
	}
	if mem, ok := store.(*cache.CacheManager); ok {
		healthDetails["cache"] = func() any { return mem.GetStats() }
	}

	router := api.SetupRouter(cfg, api.Services{
		Recipes:      recipeSvc,
		Ingredients:  ingredientSvc,
		Catalog:      cat,
		LLMAvailable: aiService.Available(),
		ReadyChecks: map[string]health.Checker{
			"catalog": func() error {
				if cat.Len() == 0 {
					return errors.New("catalog is empty")
				}
				return nil
			},
		},
		HealthDetails: healthDetails,
		Dedup:         dedup,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
			zap.Int("catalog_size", cat.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}
	if err := aiService.Close(); err != nil {
		common.LogWarn("Failed to close ai service", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		common.LogWarn("Failed to flush traces", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
