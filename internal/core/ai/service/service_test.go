package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls   int
	content string
	err     error
	last    *provider.Request
}

func (f *fakeProvider) Generate(_ context.Context, req *provider.Request) (*provider.Response, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content}, nil
}

func (f *fakeProvider) GetModel() string { return "fake" }
func (f *fakeProvider) Close() error     { return nil }

func enabledConfig() *config.Config {
	return &config.Config{LLM: config.LLMConfig{Enabled: true, APIKey: "key", MaxTokens: 123, Temperature: 0.5}}
}

func TestProcessRequestDisabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.LLM.APIKey = ""
	s := NewService(cfg, &fakeProvider{}, nil)

	_, err := s.ProcessRequest(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, s.Available())
}

func TestProcessRequestPassesSettings(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	s := NewService(enabledConfig(), p, nil)

	resp, err := s.ProcessRequest(context.Background(), "  make \n\t soup ", "data:image/png;base64,AA")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, "make soup", p.last.Prompt)
	assert.Equal(t, "data:image/png;base64,AA", p.last.ImageData)
	assert.Equal(t, 123, p.last.MaxTokens)
	assert.Equal(t, 0.5, p.last.Temperature)
}

func TestProcessRequestUsesCache(t *testing.T) {
	p := &fakeProvider{content: "cached answer"}
	store := cache.NewManager(config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	t.Cleanup(func() { _ = store.Close() })
	s := NewService(enabledConfig(), p, store)

	first, err := s.ProcessRequest(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := s.ProcessRequest(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, "cached answer", second.Content)
	assert.Equal(t, 1, p.calls)
}

func TestProcessRequestPropagatesProviderError(t *testing.T) {
	upstream := &provider.StatusError{Provider: "fake", StatusCode: 500}
	s := NewService(enabledConfig(), &fakeProvider{err: upstream}, nil)

	_, err := s.ProcessRequest(context.Background(), "p", "")
	var statusErr *provider.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestNewProvider(t *testing.T) {
	cfg := enabledConfig()
	cfg.LLM.Provider = "openrouter"
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)

	cfg.LLM.Provider = "anthropic"
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)

	cfg.LLM.Provider = "nope"
	_, err = NewProvider(cfg)
	assert.Error(t, err)
}

func TestProcessRequestGoesThroughQueue(t *testing.T) {
	cfg := enabledConfig()
	cfg.Queue = config.QueueConfig{Workers: 2, MaxSize: 4}
	s := NewService(cfg, &fakeProvider{content: "ok"}, nil)

	_, err := s.ProcessRequest(context.Background(), "p", "")
	require.NoError(t, err)

	status := s.QueueStatus()
	assert.Equal(t, int64(1), status.Processed)
	assert.Equal(t, 2, status.MaxConcurrent)
	assert.Equal(t, 0, status.Active)
}
