package recipe

// FallbackRecipes 靜態備援食譜，最後一層回退，永不為空。
// 每次呼叫回傳新切片，呼叫端可自由修改。
func FallbackRecipes() []Recipe {
	soup := Recipe{
		ID:       "fallback-1",
		Name:     "Quick vegetable soup",
		PrepTime: 15,
		Servings: 2,
		Ingredients: []RecipeIngredient{
			{Name: "vegetables from the fridge", Amount: "whatever is at hand"},
			{Name: "salt and pepper", Amount: "to taste"},
		},
		Instructions: []string{
			"Cut the vegetables into small pieces.",
			"Cover with water and simmer for 15 minutes.",
			"Season with salt and pepper.",
		},
		Nutrition:   Nutrition{"calories": 150, "protein": 5, "carbs": 25, "fat": 3},
		CookingTips: []string{"Add herbs or spices to taste."},
		Tags:        []string{TagHealthy, TagQuick, TagVegetableBased, TagVegetarian},
		Appliances:  []string{ApplianceStovetop},
	}
	soup.Availability = &Availability{
		AvailableCount:     len(soup.Ingredients),
		TotalCount:         len(soup.Ingredients),
		Percentage:         100,
		MissingIngredients: []string{},
	}
	return []Recipe{soup}
}
