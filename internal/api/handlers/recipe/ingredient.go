package recipe

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fridge-recipes/internal/core/image"
	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IngredientAnalyzer 圖片食材識別
type IngredientAnalyzer interface {
	AnalyzeIngredients(ctx context.Context, imageData string) (*recipe.AnalyzeResult, error)
}

// AnalyzeRequest 食材識別請求
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// AnalyzeResponse 食材識別響應
type AnalyzeResponse struct {
	Ingredients []recipe.Ingredient `json:"ingredients"`
	TotalCount  int                 `json:"total_count"`
	Tier        recipe.Tier         `json:"tier"`
}

// HandleAnalyze 處理食材識別請求；LLM 失敗時回傳空清單而非錯誤
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := common.RequestID(c)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err), h.debug)
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		common.WriteError(c, common.ErrInvalidImageFormat.Wrap(errors.New("image is required")), h.debug)
		return
	}

	result, err := h.ingredients.AnalyzeIngredients(c.Request.Context(), req.Image)
	if err != nil {
		common.LogWarn("圖片驗證失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("image_type", getImageType(req.Image)),
			zap.Int("image_length", len(req.Image)),
		)
		switch {
		case errors.Is(err, image.ErrImageTooLarge):
			common.WriteError(c, common.ErrInvalidImageSize.Wrap(err), h.debug)
		case errors.Is(err, image.ErrInvalidImage):
			common.WriteError(c, common.ErrInvalidImageFormat.Wrap(err), h.debug)
		default:
			common.WriteError(c, common.ErrInternalError.Wrap(err), h.debug)
		}
		return
	}

	common.LogInfo("食材識別完成",
		zap.String("request_id", requestID),
		zap.String("tier", string(result.Tier)),
		zap.Int("ingredients_count", len(result.Ingredients)),
	)
	c.JSON(http.StatusOK, AnalyzeResponse{
		Ingredients: result.Ingredients,
		TotalCount:  len(result.Ingredients),
		Tier:        result.Tier,
	})
}
