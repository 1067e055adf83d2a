package recipe

import (
	"fmt"
	"strings"
)

// 家中常備、不必出現在冰箱清單的材料
var pantryStaples = []string{
	"pasta", "rice", "potatoes", "flour", "sugar", "honey", "oil", "vinegar", "soy sauce",
	"salt", "pepper", "paprika", "oregano", "garlic", "onion", "basil", "parsley", "thyme",
}

// 可用廚具
var kitchenAppliances = []string{
	"electric stovetop", "oven", "microwave", "air fryer", "blender", "hand blender",
	"contact grill", "toaster",
}

// BuildRecipePrompt 產生食譜生成提示，要求回傳含 recipes 陣列的 JSON 物件
func BuildRecipePrompt(ingredients []string, maxTime int, restrictions []string) string {
	var b strings.Builder
	b.WriteString("You are an expert chef who specialises in quick, healthy home cooking.\n")
	fmt.Fprintf(&b, "Create 3-5 recipes using these ingredients from the fridge: %s.\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Pantry staples are also available: %s.\n", strings.Join(pantryStaples, ", "))
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Maximum preparation time: %d minutes\n", maxTime)
	b.WriteString("- No deep frying; prefer boiling, baking, grilling or steaming\n")
	fmt.Fprintf(&b, "- Only use these appliances: %s\n", strings.Join(kitchenAppliances, ", "))
	if len(restrictions) > 0 {
		fmt.Fprintf(&b, "- Dietary restrictions: %s\n", strings.Join(restrictions, ", "))
	}
	b.WriteString(`Return a single JSON object with one key "recipes" holding an array. `)
	b.WriteString("Each element must have the keys: name, prep_time (integer minutes), servings (integer), ")
	b.WriteString("ingredients (array of {name, amount}), instructions (array of strings), ")
	b.WriteString("nutrition_info ({calories, protein, carbs, fat}), cooking_tips (array of strings).\n")
	b.WriteString("Return only valid JSON without any other text, comments or explanations.")
	return b.String()
}

// IngredientPrompt 冰箱照片食材辨識提示
const IngredientPrompt = `Identify every ingredient visible in this photo of a fridge.
For each ingredient give its name, its category (one of vegetable, fruit, meat, dairy, egg, pasta, rice, legume, spice, other), an estimated quantity and its freshness (fresh, good, use soon).
Return a single JSON object with the key "ingredients" holding an array of objects with the keys name, category, quantity, freshness.
Return only valid JSON without any other text, comments or explanations.`
