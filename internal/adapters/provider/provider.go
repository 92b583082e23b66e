// Package provider adapts the supported LLM backends to a single
// completion interface. Failures cross the boundary as *Error values
// tagged with a kind; adapters never panic into callers.
package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/halcyonlab/promptforge/internal/domain"
)

// Name identifies one of the supported providers.
type Name string

const (
	Anthropic Name = "anthropic"
	OpenAI    Name = "openai"
	DeepSeek  Name = "deepseek"
	Groq      Name = "groq"
	Gemini    Name = "gemini"
	Local     Name = "local"
)

// All lists every supported provider in canonical order.
func All() []Name {
	return []Name{Anthropic, OpenAI, DeepSeek, Groq, Gemini, Local}
}

// Parse validates a provider name from user input.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All() {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownProvider, s)
}

// Request is a single completion call.
type Request struct {
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float64
}

// Result is a successful completion.
type Result struct {
	Text       string
	Model      string
	TokenCount int
	Latency    time.Duration
	CostUSD    float64
}

// ErrorKind classifies provider failures for storage and analysis.
type ErrorKind string

const (
	KindAuth        ErrorKind = "auth"
	KindRateLimited ErrorKind = "rate_limited"
	KindTimeout     ErrorKind = "timeout"
	KindUnavailable ErrorKind = "unavailable"
	KindMalformed   ErrorKind = "malformed_response"
)

// Error is the only error type adapters return.
type Error struct {
	Provider Name
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Adapter is the uniform capability every provider exposes.
type Adapter interface {
	Name() Name
	Model() string
	Complete(ctx context.Context, req Request) (*Result, error)
}

// Settings configures one provider from the application config.
type Settings struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
}

// Registry holds the configured adapters.
type Registry struct {
	adapters map[Name]Adapter
}

func NewRegistry(settings map[Name]Settings) *Registry {
	r := &Registry{adapters: make(map[Name]Adapter)}
	for name, s := range settings {
		if !s.Enabled {
			continue
		}
		switch name {
		case Anthropic:
			r.adapters[name] = newAnthropic(s)
		case OpenAI, DeepSeek, Groq, Gemini:
			r.adapters[name] = newOpenAICompatible(name, s)
		case Local:
			r.adapters[name] = NewLocal(s.Model)
		}
	}
	return r
}

// Get returns the adapter for name, or ErrProviderDisabled when the
// provider is known but not configured.
func (r *Registry) Get(name Name) (Adapter, error) {
	if _, err := Parse(string(name)); err != nil {
		return nil, err
	}
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderDisabled, name)
	}
	return a, nil
}

// Enabled lists configured providers in canonical order.
func (r *Registry) Enabled() []Name {
	var names []Name
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return rank(names[i]) < rank(names[j]) })
	return names
}

// Register installs an adapter, replacing any existing one for its name.
func (r *Registry) Register(a Adapter) { r.adapters[a.Name()] = a }

func rank(n Name) int {
	for i, known := range All() {
		if n == known {
			return i
		}
	}
	return len(All())
}
