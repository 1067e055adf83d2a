package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"fridge-recipes/internal/core/recipe"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedData []byte

// Catalog 內建食譜目錄，載入後只讀，可併發使用
type Catalog struct {
	recipes []recipe.Recipe
	byID    map[string]int
}

type seedFile struct {
	Recipes []seedRecipe `yaml:"recipes"`
}

type seedRecipe struct {
	ID           string                    `yaml:"id"`
	Name         string                    `yaml:"name"`
	PrepTime     int                       `yaml:"prep_time"`
	Servings     int                       `yaml:"servings"`
	Ingredients  []recipe.RecipeIngredient `yaml:"ingredients"`
	Instructions []string                  `yaml:"instructions"`
	Nutrition    recipe.Nutrition          `yaml:"nutrition_info"`
	CookingTips  []string                  `yaml:"cooking_tips"`
}

// New 載入內嵌的種子資料
func New() (*Catalog, error) {
	return Load(seedData)
}

// Load 解析 YAML 種子；標籤、廚具與缺少的烹飪建議由分類器推導
func Load(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var seed seedFile
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}

	c := &Catalog{
		recipes: make([]recipe.Recipe, 0, len(seed.Recipes)),
		byID:    make(map[string]int, len(seed.Recipes)),
	}
	for i, s := range seed.Recipes {
		if s.ID == "" || strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("catalog recipe %d: id and name are required", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("catalog recipe %d: duplicate id %q", i, s.ID)
		}
		if s.PrepTime < 0 {
			return nil, fmt.Errorf("catalog recipe %q: negative prep_time", s.ID)
		}

		r := recipe.Recipe{
			ID:           s.ID,
			Name:         s.Name,
			PrepTime:     s.PrepTime,
			Servings:     max(s.Servings, recipe.DefaultServings),
			Ingredients:  nonNil(s.Ingredients),
			Instructions: nonNil(s.Instructions),
			Nutrition:    s.Nutrition,
			CookingTips:  s.CookingTips,
		}
		if r.Nutrition == nil {
			r.Nutrition = recipe.Nutrition{}
		}

		c.byID[s.ID] = len(c.recipes)
		c.recipes = append(c.recipes, recipe.Classify(r))
	}
	return c, nil
}

// Search 回傳準備時間不超過 maxTime、且含有任一指定食材的食譜，保持目錄順序
func (c *Catalog) Search(ingredients []string, maxTime int) []recipe.Recipe {
	wanted := recipe.NormalizeAvailable(ingredients)
	out := make([]recipe.Recipe, 0)
	if len(wanted) == 0 {
		return out
	}

	for _, r := range c.recipes {
		if r.PrepTime > maxTime {
			continue
		}
		if containsIngredient(r, wanted) {
			out = append(out, r)
		}
	}
	return out
}

func containsIngredient(r recipe.Recipe, wanted []string) bool {
	for _, name := range r.IngredientNames() {
		name = strings.ToLower(name)
		for _, w := range wanted {
			if strings.Contains(name, w) {
				return true
			}
		}
	}
	return false
}

// Get 依 ID 取得食譜
func (c *Catalog) Get(id string) (recipe.Recipe, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return recipe.Recipe{}, false
	}
	return c.recipes[idx], true
}

// All 回傳全部食譜的副本
func (c *Catalog) All() []recipe.Recipe {
	return append([]recipe.Recipe(nil), c.recipes...)
}

// Categories 目錄中所有標籤，排序後回傳
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	for _, r := range c.recipes {
		for _, t := range r.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
