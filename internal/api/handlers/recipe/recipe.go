package recipe

import (
	"context"
	"errors"
	"net/http"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeGenerator 食譜生成與目錄搜尋
type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, req recipe.GenerateRequest) *recipe.GenerateResult
	SearchRecipes(ingredients []string, maxTime int) []recipe.Recipe
}

// CatalogReader 目錄查詢
type CatalogReader interface {
	Get(id string) (recipe.Recipe, bool)
	Categories() []string
}

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients         []IngredientInput `json:"ingredients"`
	MaxTime             *int              `json:"max_time,omitempty"`
	DietaryRestrictions []string          `json:"dietary_restrictions,omitempty"`
}

// RecipeListResponse 食譜清單響應
type RecipeListResponse struct {
	Recipes    []recipe.Recipe `json:"recipes"`
	TotalCount int             `json:"total_count"`
	Tier       recipe.Tier     `json:"tier,omitempty"`
}

// CategoriesResponse 目錄分類響應
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Handler 食譜處理程序
type Handler struct {
	recipes     RecipeGenerator
	ingredients IngredientAnalyzer
	catalog     CatalogReader
	debug       bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipes RecipeGenerator, ingredients IngredientAnalyzer, catalog CatalogReader, debug bool) *Handler {
	return &Handler{
		recipes:     recipes,
		ingredients: ingredients,
		catalog:     catalog,
		debug:       debug,
	}
}

// HandleGenerate 依食材生成食譜，管線保證至少回傳一筆
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := common.RequestID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err), h.debug)
		return
	}

	maxTime := 0
	if req.MaxTime != nil {
		if *req.MaxTime < 0 {
			common.WriteError(c, common.ErrInvalidRequest.Wrap(
				common.NewValidationError("max_time must be a non-negative integer")), h.debug)
			return
		}
		maxTime = *req.MaxTime
	}

	ingredients := ingredientNames(req.Ingredients)
	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.Strings("ingredients", ingredients),
		zap.Int("max_time", maxTime),
		zap.Strings("dietary_restrictions", req.DietaryRestrictions),
	)

	result := h.recipes.GenerateRecipes(c.Request.Context(), recipe.GenerateRequest{
		Ingredients:         ingredients,
		MaxTime:             maxTime,
		DietaryRestrictions: req.DietaryRestrictions,
	})

	common.LogInfo("食譜生成完成",
		zap.String("request_id", requestID),
		zap.String("tier", string(result.Tier)),
		zap.Int("recipes_count", len(result.Recipes)),
	)
	c.JSON(http.StatusOK, RecipeListResponse{
		Recipes:    result.Recipes,
		TotalCount: len(result.Recipes),
		Tier:       result.Tier,
	})
}

// HandleSearch 目錄搜尋，附帶食材可用度
func (h *Handler) HandleSearch(c *gin.Context) {
	maxTime, err := parseMaxTime(c.Query("max_time"))
	if err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err), h.debug)
		return
	}

	recipes := h.recipes.SearchRecipes(splitList(c.Query("ingredients")), maxTime)
	c.JSON(http.StatusOK, RecipeListResponse{
		Recipes:    recipes,
		TotalCount: len(recipes),
	})
}

// HandleCategories 目錄中所有標籤
func (h *Handler) HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: h.catalog.Categories()})
}

// HandleGet 依 ID 取得目錄食譜
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	r, ok := h.catalog.Get(id)
	if !ok {
		common.WriteError(c, common.ErrNotFound.Wrap(errors.New("recipe "+id+" not found")), h.debug)
		return
	}
	c.JSON(http.StatusOK, r)
}
