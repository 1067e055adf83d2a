package recipe

import (
	"context"
	"errors"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// Catalog 內建食譜目錄，只讀
type Catalog interface {
	Search(ingredients []string, maxTime int) []Recipe
}

// Options 管線參數
type Options struct {
	DefaultMaxTime int
	TopN           int
}

// RecipeService 食譜生成服務：llm → catalog → static
type RecipeService struct {
	ai           AIService
	catalog      Catalog
	llmAvailable bool
	opts         Options
}

// NewRecipeService 創建新的食譜生成服務。
// llmAvailable 於建構時決定，false 時直接由目錄層開始。
func NewRecipeService(ai AIService, catalog Catalog, llmAvailable bool, opts Options) *RecipeService {
	if opts.DefaultMaxTime <= 0 {
		opts.DefaultMaxTime = DefaultMaxTime
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &RecipeService{
		ai:           ai,
		catalog:      catalog,
		llmAvailable: llmAvailable && ai != nil,
		opts:         opts,
	}
}

// GenerateRecipes 根據食材生成食譜，永遠回傳非空結果
func (s *RecipeService) GenerateRecipes(ctx context.Context, req GenerateRequest) *GenerateResult {
	if req.MaxTime <= 0 {
		req.MaxTime = s.opts.DefaultMaxTime
	}
	available := NormalizeAvailable(req.Ingredients)

	if s.llmAvailable && len(available) > 0 {
		recipes, err := s.generateWithLLM(ctx, req, available)
		switch {
		case err == nil && len(recipes) > 0:
			return &GenerateResult{Recipes: recipes, Tier: TierLLM}
		case errors.Is(err, ErrUpstreamUnavailable):
			logTierSwitch(TierLLM, TierCatalog, err)
		default:
			// 回應有誤或篩選後為空，直接使用靜態備援
			logTierSwitch(TierLLM, TierStatic, err)
			return s.staticResult(ctx)
		}
	}

	if recipes := s.searchCatalog(ctx, req, available); len(recipes) > 0 {
		return &GenerateResult{Recipes: recipes, Tier: TierCatalog}
	}
	logTierSwitch(TierCatalog, TierStatic, nil)
	return s.staticResult(ctx)
}

// generateWithLLM 呼叫 LLM 並執行 解析 → 正規化 → 分類 → 篩選 → 排名
func (s *RecipeService) generateWithLLM(ctx context.Context, req GenerateRequest, available []string) (recipes []Recipe, err error) {
	ctx, span := startTier(ctx, "recipes.generate", TierLLM)
	defer func() { endTier(span, err, len(recipes)) }()

	prompt := BuildRecipePrompt(available, req.MaxTime, req.DietaryRestrictions)
	content, err := callLLM(ctx, s.ai, prompt, "")
	if err != nil {
		return nil, err
	}

	common.LogDebug("AI 回應內容 (recipes/generate)",
		zap.Int("ai_response_length", len(content)),
		zap.String("ai_response_preview", common.Preview(content, 200)),
	)

	parsed, err := ParseRecipes(content)
	if err != nil {
		return nil, err
	}

	for i := range parsed {
		parsed[i] = Classify(parsed[i])
		if parsed[i].ID == "" {
			parsed[i].ID = common.GenerateUUID()
		}
	}

	filtered := FilterDietary(parsed, req.DietaryRestrictions)
	if dropped := len(parsed) - len(filtered); dropped > 0 {
		common.LogDebug("飲食限制排除食譜", zap.Int("dropped", dropped))
	}
	return Rank(filtered, available, s.opts.TopN), nil
}

// searchCatalog 目錄關鍵字搜尋後依飲食限制篩選並排名
func (s *RecipeService) searchCatalog(ctx context.Context, req GenerateRequest, available []string) (recipes []Recipe) {
	if s.catalog == nil {
		return nil
	}
	_, span := startTier(ctx, "recipes.generate", TierCatalog)
	defer func() { endTier(span, nil, len(recipes)) }()

	matches := FilterDietary(s.catalog.Search(available, req.MaxTime), req.DietaryRestrictions)
	return Rank(matches, available, s.opts.TopN)
}

func (s *RecipeService) staticResult(ctx context.Context) *GenerateResult {
	_, span := startTier(ctx, "recipes.generate", TierStatic)
	recipes := FallbackRecipes()
	endTier(span, nil, len(recipes))
	return &GenerateResult{Recipes: recipes, Tier: TierStatic}
}

// SearchRecipes 目錄搜尋，不截斷、不排名，只附上可用度
func (s *RecipeService) SearchRecipes(ingredients []string, maxTime int) []Recipe {
	if maxTime <= 0 {
		maxTime = s.opts.DefaultMaxTime
	}
	if s.catalog == nil {
		return []Recipe{}
	}
	available := NormalizeAvailable(ingredients)
	return WithAvailability(s.catalog.Search(available, maxTime), available)
}

func logTierSwitch(from, to Tier, err error) {
	fields := []zap.Field{
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	common.LogWarn("回退層級切換", fields...)
}
