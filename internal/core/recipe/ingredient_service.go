package recipe

import (
	"context"
	"errors"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// ImageProcessor 驗證並標準化圖片
type ImageProcessor interface {
	ProcessImage(imageData string) (string, error)
}

// IngredientService 食材識別服務：llm → degraded，上游不可用時回傳空清單
type IngredientService struct {
	ai           AIService
	images       ImageProcessor
	llmAvailable bool
}

// NewIngredientService 創建新的食材識別服務
func NewIngredientService(ai AIService, images ImageProcessor, llmAvailable bool) *IngredientService {
	return &IngredientService{
		ai:           ai,
		images:       images,
		llmAvailable: llmAvailable && ai != nil,
	}
}

// AnalyzeIngredients 識別圖片中的食材。
// 只有圖片本身無效時回傳錯誤；LLM 相關失敗一律降級。
func (s *IngredientService) AnalyzeIngredients(ctx context.Context, imageData string) (*AnalyzeResult, error) {
	processed, err := s.images.ProcessImage(imageData)
	if err != nil {
		return nil, err
	}

	if !s.llmAvailable {
		common.LogInfo("LLM 未啟用，略過食材識別")
		return &AnalyzeResult{Ingredients: []Ingredient{}, Tier: TierNone}, nil
	}

	ctx, span := startTier(ctx, "ingredients.analyze", TierLLM)
	content, err := callLLM(ctx, s.ai, IngredientPrompt, processed)
	if err != nil {
		endTier(span, err, 0)
		logTierSwitch(TierLLM, TierNone, err)
		return &AnalyzeResult{Ingredients: []Ingredient{}, Tier: TierNone}, nil
	}

	ingredients, err := ParseIngredients(content)
	endTier(span, err, len(ingredients))
	if errors.Is(err, ErrMalformedResponse) {
		logTierSwitch(TierLLM, TierDegraded, err)
		return &AnalyzeResult{Ingredients: ingredients, Tier: TierDegraded}, nil
	}

	common.LogInfo("Successfully identified ingredients",
		zap.Int("ingredients_count", len(ingredients)))
	return &AnalyzeResult{Ingredients: ingredients, Tier: TierLLM}, nil
}
