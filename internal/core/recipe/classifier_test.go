package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChickenWithVegetables(t *testing.T) {
	r := Classify(Recipe{
		Name:     "Kuřecí prsa s mrkví",
		PrepTime: 15,
		Ingredients: []RecipeIngredient{
			{Name: "kuřecí prsa", Amount: "200", Unit: "g"},
			{Name: "mrkev", Amount: "2", Unit: "ks"},
		},
		Instructions: []string{"Bake in the oven for 10 minutes.", "Finish on the grill."},
	})

	assert.ElementsMatch(t, []string{TagHealthy, TagQuick, TagChickenBased, TagVegetableBased, TagMeat}, r.Tags)
	assert.ElementsMatch(t, []string{ApplianceStovetop, ApplianceOven, ApplianceGrill}, r.Appliances)
}

func TestClassifyVegetarianDairy(t *testing.T) {
	r := Classify(Recipe{
		PrepTime: 25,
		Ingredients: []RecipeIngredient{
			{Name: "špenát"}, {Name: "sýr"}, {Name: "vajíčka"},
		},
		Instructions: []string{"Rozmixujte špenát v mixéru.", "Ohřejte v mikrovlnce."},
	})

	assert.ElementsMatch(t, []string{TagHealthy, TagVegetableBased, TagVegetarian, TagDairy}, r.Tags)
	assert.ElementsMatch(t, []string{ApplianceStovetop, ApplianceBlender, ApplianceMicrowave}, r.Appliances)
}

func TestClassifyFishAndGluten(t *testing.T) {
	r := Classify(Recipe{
		PrepTime:    20,
		Ingredients: []RecipeIngredient{{Name: "Salmon fillet"}, {Name: "spaghetti"}},
	})

	assert.ElementsMatch(t, []string{TagHealthy, TagQuick, TagFishBased, TagMeat, TagGluten}, r.Tags)
	assert.Equal(t, []string{ApplianceStovetop}, r.Appliances)
}

func TestClassifyFishAndSeafoodAreNotVegetarian(t *testing.T) {
	for _, ing := range []string{
		"makrela", "mackerel fillet", "cod loin", "mražené krevety", "shrimp", "king prawns",
		"mušle", "squid rings", "chobotnice", "smoked ham", "Ham, sliced",
	} {
		r := Classify(Recipe{PrepTime: 10, Ingredients: []RecipeIngredient{{Name: ing}}})
		assert.Contains(t, r.Tags, TagMeat, ing)
		assert.NotContains(t, r.Tags, TagVegetarian, ing)
	}
}

func TestClassifyAnimalTagsExcludeVegetarian(t *testing.T) {
	for _, stem := range append(append([]string{}, chickenStems...), fishStems...) {
		r := Classify(Recipe{Ingredients: []RecipeIngredient{{Name: stem}}})
		animal := r.HasTag(TagChickenBased) || r.HasTag(TagFishBased)
		assert.True(t, animal, stem)
		assert.False(t, animal && r.HasTag(TagVegetarian), "%s: %v", stem, r.Tags)
		assert.True(t, r.HasTag(TagMeat), stem)
	}
}

func TestClassifyHamMatchesWholeWordOnly(t *testing.T) {
	r := Classify(Recipe{Ingredients: []RecipeIngredient{{Name: "champignon"}, {Name: "graham crackers"}}})
	assert.Contains(t, r.Tags, TagVegetarian)
	assert.NotContains(t, r.Tags, TagMeat)
}

func TestClassifyIsDeterministicAndDeduplicated(t *testing.T) {
	in := Recipe{
		PrepTime:     5,
		Ingredients:  []RecipeIngredient{{Name: "chicken"}, {Name: "chicken"}, {Name: "kuře"}},
		Instructions: []string{"grill", "grill again", "gril"},
	}

	first := Classify(in)
	second := Classify(in)
	assert.Equal(t, first, second)
	assert.Equal(t, toSet(first.Tags), first.Tags)
	assert.Equal(t, toSet(first.Appliances), first.Appliances)
}

func TestClassifyCookingTips(t *testing.T) {
	r := Classify(Recipe{
		PrepTime:    5,
		Ingredients: []RecipeIngredient{{Name: "hovězí maso"}, {Name: "cibule"}},
	})
	assert.Len(t, r.CookingTips, 3)

	kept := Classify(Recipe{
		PrepTime:    5,
		Ingredients: []RecipeIngredient{{Name: "hovězí maso"}},
		CookingTips: []string{"Use a hot pan."},
	})
	assert.Equal(t, []string{"Use a hot pan."}, kept.CookingTips)

	none := Classify(Recipe{PrepTime: 30, Ingredients: []RecipeIngredient{{Name: "rýže"}}})
	assert.NotNil(t, none.CookingTips)
	assert.Empty(t, none.CookingTips)
}

func TestCategorizeIngredient(t *testing.T) {
	cases := map[string]Category{
		"Mrkev":       CategoryVegetable,
		"eggplant":    CategoryVegetable,
		"lilek":       CategoryVegetable,
		"jablko":      CategoryFruit,
		"losos":       CategoryMeat,
		"chicken":     CategoryMeat,
		"krevety":     CategoryMeat,
		"prawns":      CategoryMeat,
		"ham":         CategoryMeat,
		"champignon":  CategoryOther,
		"mléko":       CategoryDairy,
		"vejce":       CategoryEgg,
		"špagety":     CategoryPasta,
		"rýže":        CategoryRice,
		"čočka":       CategoryLegume,
		"sůl":         CategorySpice,
		"tofu":        CategoryOther,
		"":            CategoryOther,
		"bell pepper": CategoryVegetable,
	}
	for name, want := range cases {
		assert.Equal(t, want, CategorizeIngredient(name), name)
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryVegetable, ParseCategory("Zelenina"))
	assert.Equal(t, CategoryMeat, ParseCategory("  MASO "))
	assert.Equal(t, CategoryDairy, ParseCategory("mléčné"))
	assert.Equal(t, CategoryEgg, ParseCategory("egg"))
	assert.Equal(t, CategoryOther, ParseCategory("mystery"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}
