package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// localAdapter is an offline provider for development and tests. It
// answers deterministically from the prompt itself and costs nothing.
type localAdapter struct {
	model string
	delay time.Duration
}

func NewLocal(model string) Adapter {
	if model == "" {
		model = defaultModels[Local]
	}
	return &localAdapter{model: model, delay: 5 * time.Millisecond}
}

func (l *localAdapter) Name() Name    { return Local }
func (l *localAdapter) Model() string { return l.model }

func (l *localAdapter) Complete(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	select {
	case <-ctx.Done():
		observe(Local, time.Since(start), ctx.Err())
		return nil, wrapFailure(Local, 0, ctx.Err())
	case <-time.After(l.delay):
	}

	words := len(strings.Fields(req.Prompt))
	text := fmt.Sprintf("[local:%s] echo of %d-word prompt: %s", l.model, words, truncate(req.Prompt, 200))
	latency := time.Since(start)
	observe(Local, latency, nil)

	return &Result{
		Text:       text,
		Model:      l.model,
		TokenCount: estimateTokens(req.Prompt + text),
		Latency:    latency,
		CostUSD:    0,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
