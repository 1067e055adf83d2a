package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.LLMConfig{APIKey: "sk-test", Model: "test/model", BaseURL: srv.URL}, 5*time.Second)
}

func TestGenerateSendsPromptAndImage(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"recipes\":[]}"}}],"usage":{"total_tokens":7}}`))
	})

	resp, err := c.Generate(context.Background(), &provider.Request{
		System:    "chef",
		Prompt:    "cook",
		ImageData: "data:image/png;base64,AAAA",
		MaxTokens: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"recipes":[]}`, resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	assert.Equal(t, "test/model", got["model"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	parts := messages[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "image_url", parts[1].(map[string]any)["type"])
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	})

	_, err := c.Generate(context.Background(), &provider.Request{Prompt: "cook"})
	require.Error(t, err)

	var statusErr *provider.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "slow down")
}

func TestGenerateMissingContentIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	resp, err := c.Generate(context.Background(), &provider.Request{Prompt: "cook"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

func TestSanitizeBodyRemovesImages(t *testing.T) {
	out := sanitizeBody([]byte(`{"url":"data:image/png;base64,AAAABBBB=="}`))
	assert.NotContains(t, out, "AAAABBBB")
	assert.Contains(t, out, "[IMAGE_DATA_REMOVED]")
}
