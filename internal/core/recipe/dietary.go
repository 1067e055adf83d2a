package recipe

import "strings"

// Restriction 可辨識的飲食限制
type Restriction string

const (
	RestrictionVegetarian Restriction = "vegetarian"
	RestrictionVegan      Restriction = "vegan"
	RestrictionGlutenFree Restriction = "gluten-free"
)

var restrictionStems = []struct {
	restriction Restriction
	stems       []string
}{
	{RestrictionVegetarian, []string{"vegetari", "vegetarián"}},
	{RestrictionVegan, []string{"vegan", "vegansk"}},
	{RestrictionGlutenFree, []string{"gluten-free", "gluten free", "glutenfree", "bezlepk"}},
}

var (
	meatTags   = []string{TagMeat, TagChickenBased, TagFishBased}
	dairyTags  = []string{TagDairy}
	glutenTags = []string{TagGluten}
)

// ParseRestrictions 將自由文字限制對應為已知限制，無法辨識者忽略
func ParseRestrictions(values []string) []Restriction {
	found := make(map[Restriction]bool)
	var out []Restriction
	for _, v := range values {
		text := strings.ToLower(strings.TrimSpace(v))
		if text == "" {
			continue
		}
		for _, rule := range restrictionStems {
			if !found[rule.restriction] && containsAny(text, rule.stems) {
				found[rule.restriction] = true
				out = append(out, rule.restriction)
			}
		}
	}
	return out
}

// Allows 判斷食譜標籤是否違反指定限制
func Allows(r Recipe, restrictions []Restriction) bool {
	for _, res := range restrictions {
		switch res {
		case RestrictionVegetarian:
			if hasAnyTag(r, meatTags) {
				return false
			}
		case RestrictionVegan:
			if hasAnyTag(r, meatTags) || hasAnyTag(r, dairyTags) {
				return false
			}
		case RestrictionGlutenFree:
			if hasAnyTag(r, glutenTags) {
				return false
			}
		}
	}
	return true
}

// FilterDietary 移除違反飲食限制的食譜，保留原順序
func FilterDietary(recipes []Recipe, restrictions []string) []Recipe {
	parsed := ParseRestrictions(restrictions)
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Allows(r, parsed) {
			out = append(out, r)
		}
	}
	return out
}

func hasAnyTag(r Recipe, tags []string) bool {
	for _, t := range tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}
