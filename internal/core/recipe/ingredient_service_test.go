package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct{ err error }

func (f fakeImages) ProcessImage(imageData string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64," + imageData, nil
}

func TestAnalyzeIngredientsInvalidImage(t *testing.T) {
	invalid := errors.New("invalid image")
	svc := NewIngredientService(&fakeAI{}, fakeImages{err: invalid}, true)

	_, err := svc.AnalyzeIngredients(context.Background(), "garbage")
	assert.ErrorIs(t, err, invalid)
}

func TestAnalyzeIngredientsLLMTier(t *testing.T) {
	ai := &fakeAI{content: `{"ingredients": [{"name": "mrkev", "category": "zelenina", "quantity": "3 ks"}]}`}
	svc := NewIngredientService(ai, fakeImages{}, true)

	res, err := svc.AnalyzeIngredients(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, TierLLM, res.Tier)
	assert.Equal(t, []Ingredient{{Name: "mrkev", Category: CategoryVegetable, Quantity: "3 ks", Freshness: DefaultFreshness}}, res.Ingredients)
	assert.Equal(t, "data:image/png;base64,AAAA", ai.lastImage)
	assert.Equal(t, IngredientPrompt, ai.lastPrompt)
}

func TestAnalyzeIngredientsDegradedTier(t *testing.T) {
	svc := NewIngredientService(&fakeAI{content: "I can see:\nMrkev: 2 ks\nMléko: 1 l"}, fakeImages{}, true)

	res, err := svc.AnalyzeIngredients(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, TierDegraded, res.Tier)
	require.Len(t, res.Ingredients, 2)
	assert.Equal(t, CategoryDairy, res.Ingredients[1].Category)
}

func TestAnalyzeIngredientsUpstreamFailure(t *testing.T) {
	svc := NewIngredientService(&fakeAI{err: errors.New("502")}, fakeImages{}, true)

	res, err := svc.AnalyzeIngredients(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, TierNone, res.Tier)
	assert.NotNil(t, res.Ingredients)
	assert.Empty(t, res.Ingredients)
}

func TestAnalyzeIngredientsCapabilityOff(t *testing.T) {
	ai := &fakeAI{}
	svc := NewIngredientService(ai, fakeImages{}, false)

	res, err := svc.AnalyzeIngredients(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Equal(t, TierNone, res.Tier)
	assert.Zero(t, ai.calls)
}
