package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecipesFieldCoercion(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [
		{"name": "Soup", "prep_time": "15 min", "servings": "4"},
		{"name": "", "prep_time": -5, "servings": 0},
		{"name": "Stew", "prep_time": "soon", "servings": 2.7},
		{"prep_time": 10},
		"not an object",
		null
	]}`)

	got, ok := NormalizeRecipes(raw)
	require.True(t, ok)
	require.Len(t, got, 3)

	assert.Equal(t, "Soup", got[0].Name)
	assert.Equal(t, 15, got[0].PrepTime)
	assert.Equal(t, 4, got[0].Servings)

	assert.Equal(t, DefaultRecipeName, got[1].Name)
	assert.Equal(t, 0, got[1].PrepTime)
	assert.Equal(t, 1, got[1].Servings)

	assert.Equal(t, "Stew", got[2].Name)
	assert.Equal(t, 0, got[2].PrepTime)
	assert.Equal(t, 2, got[2].Servings)
}

func TestNormalizeRecipesAcceptsBareArray(t *testing.T) {
	got, ok := NormalizeRecipes(json.RawMessage(`[{"name": "A"}, {"name": "B"}]`))
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[1].Name)
}

func TestNormalizeRecipesMissingContainer(t *testing.T) {
	for _, raw := range []string{``, `{"dishes": []}`, `{"recipes": "soon"}`, `42`, `null`} {
		got, ok := NormalizeRecipes(json.RawMessage(raw))
		assert.False(t, ok, raw)
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
}

func TestNormalizeRecipeIngredientVariants(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [{
		"name": "Mix",
		"ingredients": [
			"  mrkev ",
			{"name": "kuřecí prsa", "amount": "200", "unit": "g"},
			{"ingredient": "sůl", "quantity": 1},
			{"amount": "1"},
			5,
			""
		]
	}]}`)

	got, ok := NormalizeRecipes(raw)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, []RecipeIngredient{
		{Name: "mrkev"},
		{Name: "kuřecí prsa", Amount: "200", Unit: "g"},
		{Name: "sůl", Amount: "1"},
	}, got[0].Ingredients)
}

func TestNormalizeRecipeTextLists(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [{
		"name": "Steps",
		"instructions": ["Chop", {"step": "Boil"}, {"text": "Serve"}, {"other": "x"}, 3, null],
		"cooking_tips": "Use fresh herbs\n\n  Salt at the end  "
	}]}`)

	got, ok := NormalizeRecipes(raw)
	require.True(t, ok)
	assert.Equal(t, []string{"Chop", "Boil", "Serve", "3"}, got[0].Instructions)
	assert.Equal(t, []string{"Use fresh herbs", "Salt at the end"}, got[0].CookingTips)
}

func TestNormalizeRecipeNutrition(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [{
		"name": "N",
		"nutrition_info": {"calories": "280 kcal", "Protein": "35g", "carbohydrates": 15, "fat": null, "fiber": "6g"}
	}]}`)

	got, ok := NormalizeRecipes(raw)
	require.True(t, ok)
	assert.Equal(t, Nutrition{"calories": 280, "protein": 35, "carbs": 15}, got[0].Nutrition)
}

func TestNormalizeRecipesIsIdempotent(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [
		{"name": " Soup ", "prep_time": "15", "servings": "2",
		 "ingredients": ["mrkev", {"name": "cibule", "amount": "1", "unit": "ks"}],
		 "instructions": "Chop\nBoil",
		 "nutrition_info": {"calories": "120", "fat": 2.5},
		 "cooking_tips": []},
		{"name": "", "prep_time": -1}
	]}`)

	first, ok := NormalizeRecipes(raw)
	require.True(t, ok)

	encoded, err := json.Marshal(map[string]any{"recipes": first})
	require.NoError(t, err)

	second, ok := NormalizeRecipes(encoded)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestNormalizeIngredientsIsIdempotent(t *testing.T) {
	raw := json.RawMessage(`{"ingredients": [
		{"name": "mrkev", "category": "zelenina"},
		{"name": "losos", "category": "fish", "quantity": 300},
		{"quantity": "1"}
	]}`)

	first := NormalizeIngredients(raw)
	require.Len(t, first, 2)
	assert.Equal(t, CategoryOther, first[1].Category)
	assert.Equal(t, "300", first[1].Quantity)

	encoded, err := json.Marshal(map[string]any{"ingredients": first})
	require.NoError(t, err)
	assert.Equal(t, first, NormalizeIngredients(encoded))
}

func TestNormalizedRecordsAlwaysNamed(t *testing.T) {
	inputs := []string{
		`{"recipes": [{"name": null}, {"name": 7}, {"name": {"x": 1}}, {"title": "x"}]}`,
		`[{"name": "a"}, [], {"name": ""}]`,
	}
	for _, raw := range inputs {
		got, ok := NormalizeRecipes(json.RawMessage(raw))
		require.True(t, ok)
		for _, r := range got {
			assert.NotEmpty(t, r.Name, raw)
		}
	}
}

func TestNormalizeRecipesNonStringNameKeptAsUntitled(t *testing.T) {
	raw := json.RawMessage(`{"recipes": [
		{"name": null, "prep_time": 5},
		{"name": {"cs": "Polévka"}},
		{"name": ["Soup"]},
		{"name": true},
		{"name": 7}
	]}`)

	got, ok := NormalizeRecipes(raw)
	require.True(t, ok)
	require.Len(t, got, 5)
	for _, r := range got[:4] {
		assert.Equal(t, DefaultRecipeName, r.Name)
	}
	assert.Equal(t, 5, got[0].PrepTime)
	assert.Equal(t, "7", got[4].Name)
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{json.Number("12"), 12, true},
		{"12", 12, true},
		{" 7.9 ", 7, true},
		{"15 min", 15, true},
		{"2,5 h", 2, true},
		{"NaN", 0, false},
		{"about 5", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{[]any{}, 0, false},
	}
	for _, c := range cases {
		got, ok := coerceInt(c.in)
		assert.Equal(t, c.ok, ok, "%v", c.in)
		assert.Equal(t, c.want, got, "%v", c.in)
	}
}
