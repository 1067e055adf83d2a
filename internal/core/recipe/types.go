package recipe

import "sort"

// Category 食材分類
type Category string

const (
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryMeat      Category = "meat"
	CategoryDairy     Category = "dairy"
	CategoryEgg       Category = "egg"
	CategoryPasta     Category = "pasta"
	CategoryRice      Category = "rice"
	CategoryLegume    Category = "legume"
	CategorySpice     Category = "spice"
	CategoryOther     Category = "other"
)

// 欄位預設值
const (
	DefaultRecipeName = "untitled recipe"
	DefaultQuantity   = "available"
	DefaultFreshness  = "fresh"
	DefaultServings   = 1
	DefaultMaxTime    = 20
	DefaultTopN       = 5
)

// Ingredient 冰箱裡辨識出的食材
type Ingredient struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Quantity  string   `json:"quantity"`
	Freshness string   `json:"freshness"`
}

// RecipeIngredient 食譜所需食材，文字與結構化兩種輸入都會收斂成此形狀
type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// Nutrition 營養資訊，只保留 calories/protein/carbs/fat
type Nutrition map[string]float64

// Availability 食材可用度，評分時附加
type Availability struct {
	AvailableCount     int      `json:"available_count"`
	TotalCount         int      `json:"total_count"`
	Percentage         float64  `json:"availability_percentage"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// Recipe 正規化後的食譜
type Recipe struct {
	ID           string             `json:"id,omitempty"`
	Name         string             `json:"name"`
	PrepTime     int                `json:"prep_time"`
	Servings     int                `json:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Nutrition    Nutrition          `json:"nutrition_info"`
	CookingTips  []string           `json:"cooking_tips"`
	Tags         []string           `json:"tags,omitempty"`
	Appliances   []string           `json:"appliances,omitempty"`
	Availability *Availability      `json:"ingredient_availability,omitempty"`
}

// IngredientNames 依原順序回傳食材名稱
func (r Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// HasTag 判斷是否帶有指定標籤
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tier 產出結果的回退層級
type Tier string

const (
	TierLLM      Tier = "llm"
	TierDegraded Tier = "degraded"
	TierCatalog  Tier = "catalog"
	TierStatic   Tier = "static"
	TierNone     Tier = "none"
)

// GenerateRequest 食譜生成輸入
type GenerateRequest struct {
	Ingredients         []string
	MaxTime             int
	DietaryRestrictions []string
}

// GenerateResult 食譜生成輸出，Recipes 永不為空
type GenerateResult struct {
	Recipes []Recipe `json:"recipes"`
	Tier    Tier     `json:"tier"`
}

// AnalyzeResult 食材分析輸出，Ingredients 永不為 nil
type AnalyzeResult struct {
	Ingredients []Ingredient `json:"ingredients"`
	Tier        Tier         `json:"tier"`
}

// toSet 去重並排序，空字串會被丟棄
func toSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
