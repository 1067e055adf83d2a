package recipe

import (
	"math"
	"sort"
	"strings"
)

// 排名權重
const (
	availabilityWeight = 0.7
	timeWeight         = 0.3
	timeBonusHorizon   = 20.0
)

// NormalizeAvailable 去除空白、轉小寫並去重，空字串會被丟棄
func NormalizeAvailable(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ComputeAvailability 計算食譜食材在可用清單中的命中情況。
// available 需先經 NormalizeAvailable 處理。
func ComputeAvailability(r Recipe, available []string) Availability {
	a := Availability{
		TotalCount:         len(r.Ingredients),
		MissingIngredients: make([]string, 0),
	}
	for _, ing := range r.Ingredients {
		if matchesAvailable(ing.Name, available) {
			a.AvailableCount++
		} else {
			a.MissingIngredients = append(a.MissingIngredients, ing.Name)
		}
	}
	if a.TotalCount > 0 {
		a.Percentage = math.Round(a.ratio()*1000) / 10
	}
	return a
}

func (a Availability) ratio() float64 {
	if a.TotalCount == 0 {
		return 0
	}
	return float64(a.AvailableCount) / float64(a.TotalCount)
}

// 完全相同或任一方包含另一方即視為持有
func matchesAvailable(name string, available []string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, have := range available {
		if name == have || strings.Contains(name, have) || strings.Contains(have, name) {
			return true
		}
	}
	return false
}

// Score 0.7 × 可用比例 + 0.3 × 時間加分
func Score(prepTime int, a Availability) float64 {
	bonus := math.Max(0, (timeBonusHorizon-float64(prepTime))/timeBonusHorizon)
	return availabilityWeight*a.ratio() + timeWeight*bonus
}

// WithAvailability 為每道食譜附上可用度，回傳新切片
func WithAvailability(recipes []Recipe, available []string) []Recipe {
	set := NormalizeAvailable(available)
	out := make([]Recipe, len(recipes))
	for i, r := range recipes {
		a := ComputeAvailability(r, set)
		r.Availability = &a
		out[i] = r
	}
	return out
}

// Rank 附上可用度後依分數由高到低穩定排序；topN <= 0 表示不截斷
func Rank(recipes []Recipe, available []string, topN int) []Recipe {
	ranked := WithAvailability(recipes, available)
	scores := make([]float64, len(ranked))
	for i, r := range ranked {
		scores[i] = Score(r.PrepTime, *r.Availability)
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	out := make([]Recipe, 0, len(ranked))
	for _, idx := range order {
		if topN > 0 && len(out) == topN {
			break
		}
		out = append(out, ranked[idx])
	}
	return out
}
