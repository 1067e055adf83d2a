package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-recipes/internal/core/ai/anthropic"
	"fridge-recipes/internal/core/ai/cache"
	"fridge-recipes/internal/core/ai/openrouter"
	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/core/ai/queue"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrDisabled LLM 未啟用或缺少 API Key
var ErrDisabled = errors.New("llm service disabled")

// Response AI 回應結構
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務：快取查詢後呼叫供應商
type Service struct {
	provider    provider.Provider
	cache       cache.Store
	queue       *queue.Manager
	maxTokens   int
	temperature float64
	enabled     bool
}

// NewProvider 依設定建立供應商
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.LLM.Provider {
	case "openrouter":
		return openrouter.NewClient(cfg.LLM, cfg.Server.RequestTimeout), nil
	case "anthropic":
		return anthropic.NewClient(cfg.LLM), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.LLM.Provider)
	}
}

// NewService 創建 AI 服務；store 可為 nil
func NewService(cfg *config.Config, p provider.Provider, store cache.Store) *Service {
	return &Service{
		provider:    p,
		cache:       store,
		queue:       queue.NewManager(cfg.Queue),
		maxTokens:   cfg.LLM.MaxTokens,
		temperature: cfg.LLM.Temperature,
		enabled:     cfg.LLMAvailable() && p != nil,
	}
}

// Available 回報是否可呼叫 LLM
func (s *Service) Available() bool {
	return s != nil && s.enabled
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (*Response, error) {
	if !s.Available() {
		return nil, ErrDisabled
	}

	// 統一 prompt 空白，確保快取 key 一致
	prompt = strings.Join(strings.Fields(prompt), " ")

	if s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt, imageData); err == nil {
			return &Response{Content: val, CacheHit: true}, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.Error(err))
		}
	}

	var resp *provider.Response
	err := s.queue.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		var err error
		resp, err = s.provider.Generate(ctx, &provider.Request{
			Prompt:      prompt,
			ImageData:   imageData,
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
		common.LogAICall(s.provider.GetModel(), time.Since(start), err)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 空白回應不寫入快取
	if s.cache != nil && strings.TrimSpace(resp.Content) != "" {
		if err := s.cache.Set(ctx, prompt, imageData, resp.Content); err != nil {
			common.LogWarn("快取寫入失敗", zap.Error(err))
		}
	}

	return &Response{Content: resp.Content}, nil
}

// QueueStatus LLM 呼叫隊列狀態
func (s *Service) QueueStatus() queue.Status {
	return s.queue.GetQueueStatus()
}

// Close 關閉供應商與快取
func (s *Service) Close() error {
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	return errors.Join(errs...)
}
