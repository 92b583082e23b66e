package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/halcyonlab/promptforge/internal/adapters/metrics"
	"github.com/halcyonlab/promptforge/internal/adapters/retry"
)

var tracer = otel.Tracer("promptforge/provider")

// deepseek, groq and gemini all speak the OpenAI chat completions
// protocol, so one adapter covers the four of them.
var defaultBaseURLs = map[Name]string{
	OpenAI:   "https://api.openai.com/v1",
	DeepSeek: "https://api.deepseek.com/v1",
	Groq:     "https://api.groq.com/openai/v1",
	Gemini:   "https://generativelanguage.googleapis.com/v1beta/openai",
}

var defaultModels = map[Name]string{
	Anthropic: "claude-3-5-haiku-latest",
	OpenAI:    "gpt-4o-mini",
	DeepSeek:  "deepseek-chat",
	Groq:      "llama-3.3-70b-versatile",
	Gemini:    "gemini-2.0-flash",
	Local:     "local-echo",
}

type openAICompatible struct {
	name    Name
	model   string
	client  *openai.Client
	backoff retry.BackoffConfig
}

func newOpenAICompatible(name Name, s Settings) *openAICompatible {
	cfg := openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	} else if url, ok := defaultBaseURLs[name]; ok {
		cfg.BaseURL = url
	}
	model := s.Model
	if model == "" {
		model = defaultModels[name]
	}
	return &openAICompatible{
		name:    name,
		model:   model,
		client:  openai.NewClientWithConfig(cfg),
		backoff: retry.DefaultConfig(),
	}
}

func (c *openAICompatible) Name() Name    { return c.name }
func (c *openAICompatible) Model() string { return c.model }

func (c *openAICompatible) Complete(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "provider.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", string(c.name)),
		attribute.String("llm.model", c.model),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	var resp openai.ChatCompletionResponse
	start := time.Now()
	err := retry.WithBackoffHTTP(ctx, c.backoff, func() (int, error) {
		var callErr error
		resp, callErr = c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   req.MaxTokens,
			Temperature: float32(req.Temperature),
		})
		if callErr != nil {
			var apiErr *openai.APIError
			if errors.As(callErr, &apiErr) {
				return apiErr.HTTPStatusCode, callErr
			}
			return 0, callErr
		}
		return http.StatusOK, nil
	})
	latency := time.Since(start)
	observe(c.name, latency, err)

	if err != nil {
		status := 0
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		perr := wrapFailure(c.name, status, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(perr.Kind))
		return nil, perr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		perr := &Error{Provider: c.name, Kind: KindMalformed, Err: errors.New("empty completion")}
		span.SetStatus(codes.Error, string(perr.Kind))
		return nil, perr
	}

	text := resp.Choices[0].Message.Content
	tokens := resp.Usage.TotalTokens
	if tokens == 0 {
		tokens = estimateTokens(req.Prompt + text)
	}
	metrics.ProviderTokensTotal.WithLabelValues(string(c.name)).Add(float64(tokens))
	span.SetAttributes(attribute.Int("llm.tokens", tokens))

	return &Result{
		Text:       text,
		Model:      c.model,
		TokenCount: tokens,
		Latency:    latency,
		CostUSD:    EstimateCost(c.name, c.model, tokens),
	}, nil
}

func observe(name Name, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ProviderRequestsTotal.WithLabelValues(string(name), status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(string(name)).Observe(d.Seconds())
}

// wrapFailure maps a transport or API error onto the error taxonomy.
// status 0 means no HTTP status is known.
func wrapFailure(name Name, status int, err error) *Error {
	kind := KindUnavailable
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		kind = KindTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status == http.StatusRequestTimeout:
		kind = KindTimeout
	}
	return &Error{Provider: name, Kind: kind, Err: err}
}
