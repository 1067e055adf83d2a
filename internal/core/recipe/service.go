package recipe

import (
	"context"
	"fmt"

	"fridge-recipes/internal/core/ai/service"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fridge-recipes/internal/core/recipe"

// AIService LLM 文字補全
type AIService interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (*service.Response, error)
}

// callLLM 呼叫 LLM；任何錯誤皆歸類為上游不可用
func callLLM(ctx context.Context, ai AIService, prompt, imageData string) (string, error) {
	resp, err := ai.ProcessRequest(ctx, prompt, imageData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}

func startTier(ctx context.Context, operation string, tier Tier) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, operation+"."+string(tier))
	span.SetAttributes(attribute.String("recipe.tier", string(tier)))
	return ctx, span
}

func endTier(span trace.Span, err error, produced int) {
	span.SetAttributes(attribute.Int("recipe.produced", produced))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
