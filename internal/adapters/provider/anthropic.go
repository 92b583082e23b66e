package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/halcyonlab/promptforge/internal/adapters/metrics"
	"github.com/halcyonlab/promptforge/internal/adapters/retry"
)

type anthropicAdapter struct {
	model   string
	client  *anthropic.Client
	backoff retry.BackoffConfig
}

func newAnthropic(s Settings) *anthropicAdapter {
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	model := s.Model
	if model == "" {
		model = defaultModels[Anthropic]
	}
	return &anthropicAdapter{
		model:   model,
		client:  anthropic.NewClient(opts...),
		backoff: retry.DefaultConfig(),
	}
}

func (a *anthropicAdapter) Name() Name    { return Anthropic }
func (a *anthropicAdapter) Model() string { return a.model }

func (a *anthropicAdapter) Complete(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "provider.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", string(Anthropic)),
		attribute.String("llm.model", a.model),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	)

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(a.model)),
		MaxTokens: anthropic.Int(int64(maxTokens)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		}),
	}
	if req.System != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(req.System),
		})
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.F(req.Temperature)
	}

	var resp *anthropic.Message
	start := time.Now()
	err := retry.WithBackoffHTTP(ctx, a.backoff, func() (int, error) {
		var callErr error
		resp, callErr = a.client.Messages.New(ctx, params)
		if callErr != nil {
			var apiErr *anthropic.Error
			if errors.As(callErr, &apiErr) {
				return apiErr.StatusCode, callErr
			}
			return 0, callErr
		}
		return 200, nil
	})
	latency := time.Since(start)
	observe(Anthropic, latency, err)

	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		perr := wrapFailure(Anthropic, status, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(perr.Kind))
		return nil, perr
	}

	text := collectText(resp)
	if strings.TrimSpace(text) == "" {
		perr := &Error{Provider: Anthropic, Kind: KindMalformed, Err: errors.New("empty completion")}
		span.SetStatus(codes.Error, string(perr.Kind))
		return nil, perr
	}

	tokens := int(resp.Usage.InputTokens + resp.Usage.OutputTokens)
	if tokens == 0 {
		tokens = estimateTokens(req.Prompt + text)
	}
	metrics.ProviderTokensTotal.WithLabelValues(string(Anthropic)).Add(float64(tokens))
	span.SetAttributes(attribute.Int("llm.tokens", tokens))

	return &Result{
		Text:       text,
		Model:      a.model,
		TokenCount: tokens,
		Latency:    latency,
		CostUSD:    EstimateCost(Anthropic, a.model, tokens),
	}, nil
}

func collectText(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	return b.String()
}
