package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```  "))
	assert.Equal(t, `{"a":1}`, StripCodeFence("\uFEFF{\"a\":1}"))
	assert.Equal(t, "plain text", StripCodeFence("  plain text \n"))
}

func TestExtractJSON(t *testing.T) {
	t.Run("empty input is not an error", func(t *testing.T) {
		value, err := ExtractJSON("  \n\t ")
		assert.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("strict object", func(t *testing.T) {
		value, err := ExtractJSON(`{"recipes": []}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"recipes": []}`, string(value))
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		value, err := ExtractJSON("Here you go: {\"a\": 1}\nEnjoy!")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a": 1}`, string(value))
	})

	t.Run("bare array", func(t *testing.T) {
		value, err := ExtractJSON(`[{"name":"x"}]`)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"name":"x"}]`, string(value))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ExtractJSON("not json at all")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("truncated json", func(t *testing.T) {
		_, err := ExtractJSON(`{"recipes": [{"name": "x"`)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestParseIngredientLines(t *testing.T) {
	raw := "- Mrkev: 3 ks\n2. chicken breast: 200 g\nrandom text\n\"name\": \"x\"\nmrkev: again\n{: broken"

	got := ParseIngredientLines(raw)
	require.Len(t, got, 2)

	assert.Equal(t, Ingredient{Name: "Mrkev", Category: CategoryVegetable, Quantity: "3 ks", Freshness: DefaultFreshness}, got[0])
	assert.Equal(t, Ingredient{Name: "chicken breast", Category: CategoryMeat, Quantity: "200 g", Freshness: DefaultFreshness}, got[1])
}

func TestParseIngredientLinesNoMatch(t *testing.T) {
	got := ParseIngredientLines("nothing to see here")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseIngredients(t *testing.T) {
	t.Run("valid payload drops unnamed elements", func(t *testing.T) {
		raw := "```json\n" + `{"ingredients": [
			{"name": "mrkev", "category": "zelenina"},
			{"category": "maso"},
			"bad",
			{"name": "   "},
			{"name": "mléko", "category": "dairy", "quantity": "1 l", "freshness": "use soon"}
		]}` + "\n```"

		got, err := ParseIngredients(raw)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, Ingredient{Name: "mrkev", Category: CategoryVegetable, Quantity: DefaultQuantity, Freshness: DefaultFreshness}, got[0])
		assert.Equal(t, Ingredient{Name: "mléko", Category: CategoryDairy, Quantity: "1 l", Freshness: "use soon"}, got[1])
	})

	t.Run("malformed falls back to lines", func(t *testing.T) {
		got, err := ParseIngredients("Sure! Here is what I see:\nMrkev: 2 ks\nSýr: kousek")
		assert.ErrorIs(t, err, ErrMalformedResponse)
		require.Len(t, got, 2)
		assert.Equal(t, CategoryDairy, got[1].Category)
	})

	t.Run("empty response", func(t *testing.T) {
		got, err := ParseIngredients("")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestParseRecipesNotJSONUsesFallback(t *testing.T) {
	got, err := ParseRecipes("not json at all")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	require.NotEmpty(t, got)
	assert.Equal(t, FallbackRecipes(), got)
}

func TestParseRecipesFencedWithStringPrepTime(t *testing.T) {
	raw := "```json\n{\"recipes\": [{\"name\":\"X\",\"prep_time\":\"12\"}]}\n```"

	got, err := ParseRecipes(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, "X", r.Name)
	assert.Equal(t, 12, r.PrepTime)
	assert.Equal(t, DefaultServings, r.Servings)
	assert.NotNil(t, r.Ingredients)
	assert.Empty(t, r.Ingredients)
	assert.NotNil(t, r.Instructions)
	assert.Empty(t, r.Instructions)
	assert.Empty(t, r.Nutrition)
}

func TestParseRecipesMissingKeyUsesFallback(t *testing.T) {
	got, err := ParseRecipes(`{"dishes": []}`)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, FallbackRecipes(), got)

	got, err = ParseRecipes("   ")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, FallbackRecipes(), got)
}
