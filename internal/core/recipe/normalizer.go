package recipe

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"fridge-recipes/internal/pkg/common"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

var leadingNumber = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?`)

// 營養欄位別名
var nutritionKeys = map[string]string{
	"calories":      "calories",
	"kcal":          "calories",
	"energy":        "calories",
	"protein":       "protein",
	"proteins":      "protein",
	"carbs":         "carbs",
	"carbohydrates": "carbs",
	"fat":           "fat",
	"fats":          "fat",
}

// 指示步驟若是物件，依序嘗試的文字欄位
var stepTextKeys = []string{"text", "step", "instruction", "description", "tip"}

// NormalizeIngredients 將 {"ingredients": [...]}（或裸陣列）轉為食材紀錄。
// 缺少 name 的元素會被丟棄；結果永不為 nil。
func NormalizeIngredients(value json.RawMessage) []Ingredient {
	items, _ := container(value, "ingredients")

	ingredients := make([]Ingredient, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			common.LogDebug("丟棄非物件食材", zap.Int("index", i))
			continue
		}
		name, ok := scalarString(m["name"])
		if !ok || name == "" {
			common.LogDebug("丟棄缺少名稱的食材", zap.Int("index", i))
			continue
		}

		ing := Ingredient{
			Name:      name,
			Category:  CategoryOther,
			Quantity:  DefaultQuantity,
			Freshness: DefaultFreshness,
		}
		if c, ok := scalarString(m["category"]); ok {
			ing.Category = ParseCategory(c)
		}
		if q, ok := scalarString(m["quantity"]); ok && q != "" {
			ing.Quantity = q
		}
		if f, ok := scalarString(m["freshness"]); ok && f != "" {
			ing.Freshness = f
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}

// NormalizeRecipes 將 {"recipes": [...]}（或裸陣列）轉為食譜紀錄。
// ok 為 false 表示輸入為空或缺少 recipes 陣列，呼叫端應改用備援食譜。
func NormalizeRecipes(value json.RawMessage) (recipes []Recipe, ok bool) {
	items, ok := container(value, "recipes")
	if !ok {
		return []Recipe{}, false
	}

	recipes = make([]Recipe, 0, len(items))
	for i, item := range items {
		m, isObject := item.(map[string]any)
		if !isObject {
			common.LogDebug("丟棄非物件食譜", zap.Int("index", i))
			continue
		}
		rawName, hasName := m["name"]
		if !hasName {
			common.LogDebug("丟棄缺少名稱的食譜", zap.Int("index", i))
			continue
		}
		recipes = append(recipes, normalizeRecipe(m, rawName))
	}
	return recipes, true
}

func normalizeRecipe(m map[string]any, rawName any) Recipe {
	r := Recipe{
		Name:         DefaultRecipeName,
		Servings:     DefaultServings,
		Ingredients:  resolveIngredients(m["ingredients"]),
		Instructions: stringList(m["instructions"]),
		Nutrition:    nutrition(m["nutrition_info"]),
		CookingTips:  stringList(m["cooking_tips"]),
	}

	if name, ok := scalarString(rawName); ok && name != "" {
		r.Name = name
	}
	if id, ok := scalarString(m["id"]); ok {
		r.ID = id
	}

	prep, ok := m["prep_time"]
	if !ok {
		prep = m["prep_time_minutes"]
	}
	if minutes, ok := coerceInt(prep); ok && minutes > 0 {
		r.PrepTime = minutes
	}
	if servings, ok := coerceInt(m["servings"]); ok && servings >= 1 {
		r.Servings = servings
	}

	return r
}

// container 取出頂層陣列；物件需帶有 key 對應的陣列
func container(value json.RawMessage, key string) ([]any, bool) {
	if len(value) == 0 {
		return nil, false
	}
	var decoded any
	if err := common.ParseJSONBytes(value, &decoded); err != nil {
		return nil, false
	}

	switch v := decoded.(type) {
	case []any:
		return v, true
	case map[string]any:
		items, ok := v[key].([]any)
		return items, ok
	default:
		return nil, false
	}
}

// ingredientEntry 食譜食材的兩種輸入形態：純文字或 {name, amount, unit}
type ingredientEntry struct {
	text   string
	fields map[string]any
}

func newIngredientEntry(v any) (ingredientEntry, bool) {
	switch t := v.(type) {
	case string:
		return ingredientEntry{text: t}, true
	case map[string]any:
		return ingredientEntry{fields: t}, true
	default:
		return ingredientEntry{}, false
	}
}

func (e ingredientEntry) resolve() (RecipeIngredient, bool) {
	if e.fields == nil {
		name := strings.TrimSpace(e.text)
		return RecipeIngredient{Name: name}, name != ""
	}

	var ing RecipeIngredient
	for _, key := range []string{"name", "ingredient", "item"} {
		if name, ok := scalarString(e.fields[key]); ok && name != "" {
			ing.Name = name
			break
		}
	}
	if ing.Name == "" {
		return ing, false
	}
	if amount, ok := scalarString(e.fields["amount"]); ok {
		ing.Amount = amount
	} else if quantity, ok := scalarString(e.fields["quantity"]); ok {
		ing.Amount = quantity
	}
	if unit, ok := scalarString(e.fields["unit"]); ok {
		ing.Unit = unit
	}
	return ing, true
}

func resolveIngredients(v any) []RecipeIngredient {
	out := make([]RecipeIngredient, 0)
	items, ok := v.([]any)
	if !ok {
		if s, isString := v.(string); isString {
			for _, part := range splitLines(s) {
				out = append(out, RecipeIngredient{Name: part})
			}
		}
		return out
	}

	for _, item := range items {
		entry, ok := newIngredientEntry(item)
		if !ok {
			continue
		}
		if ing, ok := entry.resolve(); ok {
			out = append(out, ing)
		}
	}
	return out
}

func stringList(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case string:
		return append(out, splitLines(t)...)
	case []any:
		for _, item := range t {
			if s, ok := scalarString(item); ok && s != "" {
				out = append(out, s)
				continue
			}
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range stepTextKeys {
				if s, ok := scalarString(m[key]); ok && s != "" {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}

func nutrition(v any) Nutrition {
	out := Nutrition{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for key, raw := range m {
		canonical, known := nutritionKeys[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			continue
		}
		if f, ok := coerceFloat(raw); ok && f >= 0 {
			out[canonical] = f
		}
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// scalarString 字串或數字轉為去除空白的字串
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// coerceFloat 數字、數字字串或以數字開頭的字串（如 "35g"）轉為 float64
func coerceFloat(v any) (float64, bool) {
	var s string
	switch t := v.(type) {
	case nil, bool, map[string]any, []any:
		return 0, false
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		f, err := cast.ToFloat64E(t)
		return f, err == nil && finite(f)
	}

	if f, err := cast.ToFloat64E(s); err == nil && finite(f) {
		return f, true
	}
	lead := leadingNumber.FindString(s)
	if lead == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(strings.Replace(lead, ",", ".", 1))
	return f, err == nil && finite(f)
}

// coerceInt 同 coerceFloat，小數部分捨去
func coerceInt(v any) (int, bool) {
	f, ok := coerceFloat(v)
	if !ok || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
