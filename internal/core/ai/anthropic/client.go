package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fridge-recipes/internal/core/ai/provider"
	"fridge-recipes/internal/infrastructure/config"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const providerName = "anthropic"

// Messager 對應 SDK 的 Messages 服務，方便測試替換
type Messager interface {
	New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Client Anthropic Messages API 客戶端
type Client struct {
	messages Messager
	model    string
}

// NewClient 創建新的 Anthropic 客戶端
func NewClient(cfg config.LLMConfig) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" && !strings.Contains(cfg.BaseURL, "openrouter") {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := sdk.NewClient(opts...)
	return newClient(&c.Messages, cfg.Model)
}

func newClient(messages Messager, model string) *Client {
	return &Client{messages: messages, model: model}
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	blocks := []sdk.ContentBlockParamUnion{sdk.NewTextBlock(req.Prompt)}
	if req.ImageData != "" {
		mediaType, data, ok := provider.SplitDataURI(req.ImageData)
		if !ok {
			return nil, fmt.Errorf("invalid image data uri")
		}
		blocks = append(blocks, sdk.NewImageBlockBase64(mediaType, data))
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(blocks...)},
		Temperature: sdk.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return nil, &provider.StatusError{Provider: providerName, StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return nil, fmt.Errorf("failed to send request to Anthropic: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}

	return &provider.Response{
		Content: sb.String(),
		Usage: provider.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.model
}

// Close SDK 客戶端無需釋放資源
func (c *Client) Close() error {
	return nil
}
