package recipe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fridge-recipes/internal/pkg/common"
)

// IngredientInput 接受字串或帶 name 欄位的物件
type IngredientInput struct {
	Name string
}

// UnmarshalJSON 實作 json.Unmarshaler
func (in *IngredientInput) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		in.Name = name
		return nil
	}

	var obj struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Name == nil {
		return fmt.Errorf("ingredient must be a string or an object with a name")
	}
	in.Name = *obj.Name
	return nil
}

// ingredientNames 去除空白名稱
func ingredientNames(inputs []IngredientInput) []string {
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if name := strings.TrimSpace(in.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// splitList 解析以逗號分隔的查詢參數
func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseMaxTime 解析查詢參數中的時間上限，空字串代表使用預設值
func parseMaxTime(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, common.NewValidationError("max_time must be a non-negative integer")
	}
	return v, nil
}

// getImageType 獲取圖片類型（用於日誌記錄）
func getImageType(image string) string {
	switch {
	case image == "":
		return "empty"
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		return "url"
	case strings.HasPrefix(image, "data:image/"):
		header, _, ok := strings.Cut(image, ";base64,")
		if !ok {
			return "invalid_data_uri"
		}
		return "base64_data_uri_" + strings.TrimPrefix(header, "data:image/")
	default:
		return "raw"
	}
}
