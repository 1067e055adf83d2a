package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	// ErrUpstreamUnavailable LLM 服務無法連線或回傳非成功狀態
	ErrUpstreamUnavailable = errors.New("llm upstream unavailable")
	// ErrMalformedResponse LLM 回傳成功但內容無法解碼
	ErrMalformedResponse = errors.New("malformed llm response")
)

var (
	fenceStart = regexp.MustCompile("(?is)^\\s*```[a-z]*\\s*")
	fenceEnd   = regexp.MustCompile("(?s)\\s*```\\s*$")

	// 「名稱: 其餘」格式，允許前置的清單符號或編號
	fallbackLine = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])?\s*([^:]+?)\s*:\s*(.+?)\s*$`)

	// 破損 JSON 中的欄位名稱不是食材
	structuralKeys = map[string]struct{}{
		"name": {}, "category": {}, "quantity": {}, "freshness": {},
		"ingredients": {}, "recipes": {}, "amount": {}, "unit": {},
	}
)

// StripCodeFence 去掉 ```json ... ``` 包裹與 BOM
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\uFEFF")
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = fenceStart.ReplaceAllString(s, "")
	s = fenceEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractJSON 從 LLM 文字擷取單一 JSON 值。
// 空白輸入回傳 (nil, nil)；無法解碼時回傳 ErrMalformedResponse。
func ExtractJSON(raw string) (json.RawMessage, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, nil
	}

	var value json.RawMessage
	err := common.ParseJSON(cleaned, &value)
	if err == nil {
		return value, nil
	}

	// 文字前後夾雜說明時，擷取第一個 { 或 [ 到最後一個 } 或 ]
	if span, ok := jsonSpan(cleaned); ok {
		if spanErr := common.ParseJSON(span, &value); spanErr == nil {
			return value, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
}

func jsonSpan(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	end := strings.LastIndexAny(s, "}]")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseIngredientLines 逐行尋找「名稱: 其餘」並合成最小的食材紀錄，永不失敗
func ParseIngredientLines(raw string) []Ingredient {
	ingredients := make([]Ingredient, 0)
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		m := fallbackLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.Trim(m[1], ` "'*`+"`")
		key := strings.ToLower(name)
		if name == "" || strings.ContainsAny(name, "{}[]") {
			continue
		}
		if _, structural := structuralKeys[key]; structural {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		quantity := strings.Trim(m[2], ` "',`)
		if quantity == "" {
			quantity = DefaultQuantity
		}

		ingredients = append(ingredients, Ingredient{
			Name:      name,
			Category:  CategorizeIngredient(name),
			Quantity:  quantity,
			Freshness: DefaultFreshness,
		})
	}

	return ingredients
}

// ParseIngredients 解析食材分析回應；JSON 解碼失敗時改用逐行解析
func ParseIngredients(raw string) ([]Ingredient, error) {
	value, err := ExtractJSON(raw)
	if err != nil {
		common.LogWarn("食材回應解析失敗，改用逐行解析",
			zap.Error(err),
			zap.String("raw_preview", common.Preview(raw, 500)),
		)
		return ParseIngredientLines(raw), err
	}
	return NormalizeIngredients(value), nil
}

// ParseRecipes 解析食譜生成回應；無法解碼或缺少 recipes 時回傳靜態備援食譜
func ParseRecipes(raw string) ([]Recipe, error) {
	value, err := ExtractJSON(raw)
	if err != nil {
		common.LogWarn("食譜回應解析失敗，使用備援食譜",
			zap.Error(err),
			zap.String("raw_preview", common.Preview(raw, 500)),
		)
		return FallbackRecipes(), err
	}

	recipes, ok := NormalizeRecipes(value)
	if !ok {
		common.LogWarn("食譜回應缺少 recipes 欄位，使用備援食譜",
			zap.String("raw_preview", common.Preview(raw, 500)),
		)
		return FallbackRecipes(), fmt.Errorf("%w: missing recipes", ErrMalformedResponse)
	}
	return recipes, nil
}
