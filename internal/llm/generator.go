// Package llm puts the AI text providers behind one prompt-in, text-out
// interface so research and adjudication can run on any of them.
package llm

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/ajofficial223/Data-Scraper/internal/config"
	"github.com/ajofficial223/Data-Scraper/internal/resilience"
	"github.com/ajofficial223/Data-Scraper/pkg/anthropic"
	"github.com/ajofficial223/Data-Scraper/pkg/gemini"
	"github.com/ajofficial223/Data-Scraper/pkg/perplexity"
)

// Generator turns a prompt into free text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Clients bundles the provider clients a Generator can be built from.
// Unused providers may be nil.
type Clients struct {
	Anthropic  anthropic.Client
	Perplexity perplexity.Client
	Gemini     gemini.Client
}

// Phases a Generator can serve.
const (
	PhaseResearch  = "research"
	PhaseReconcile = "reconcile"
)

// New returns the Generator for provider. phase labels cost log lines and
// selects phase-specific behavior. Every call is bounded by llm.timeout_secs.
func New(provider, phase string, clients Clients, cfg *config.Config) (Generator, error) {
	timeout := cfg.LLM.Timeout()
	switch provider {
	case config.ProviderAnthropic:
		if clients.Anthropic == nil {
			return nil, eris.New("llm: anthropic client not configured")
		}
		return &AnthropicGenerator{
			client:    clients.Anthropic,
			model:     cfg.Anthropic.Model,
			maxTokens: cfg.Anthropic.MaxTokens,
			phase:     phase,
			timeout:   timeout,
		}, nil
	case config.ProviderPerplexity:
		if clients.Perplexity == nil {
			return nil, eris.New("llm: perplexity client not configured")
		}
		return &PerplexityGenerator{
			client:        clients.Perplexity,
			model:         cfg.Perplexity.Model,
			searchContext: cfg.Perplexity.SearchContext,
			citeSources:   phase == PhaseResearch,
			timeout:       timeout,
		}, nil
	case config.ProviderGemini:
		if clients.Gemini == nil {
			return nil, eris.New("llm: gemini client not configured")
		}
		return &GeminiGenerator{client: clients.Gemini, timeout: timeout}, nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", provider)
	}
}

// AnthropicGenerator generates with a Claude model.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	phase     string
	timeout   time.Duration
}

// Name implements Generator.
func (g *AnthropicGenerator) Name() string { return config.ProviderAnthropic }

// Generate implements Generator.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	maxTokens := g.maxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temp := 0.0
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: anthropic generate")
	}
	resp.Usage.LogCost(g.model, g.phase)
	return resp.Text(), nil
}

// PerplexityGenerator generates with a Perplexity sonar model, which grounds
// its answer in a live web search. In the research phase the cited pages
// are appended to the answer.
type PerplexityGenerator struct {
	client        perplexity.Client
	model         string
	searchContext string
	citeSources   bool
	timeout       time.Duration
}

// Name implements Generator.
func (g *PerplexityGenerator) Name() string { return config.ProviderPerplexity }

// Generate implements Generator. Transient HTTP failures are retried; the
// timeout applies to each attempt.
func (g *PerplexityGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	retry := resilience.DefaultPolicy()
	retry.Backoff = time.Second
	retry.OnRetry = resilience.RetryLogger("perplexity", "chat_completion")

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*perplexity.ChatCompletionResponse, error) {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		req := perplexity.ChatCompletionRequest{
			Model:    g.model,
			Messages: []perplexity.Message{{Role: "user", Content: prompt}},
		}
		if g.searchContext != "" {
			req.WebSearchOptions = &perplexity.WebSearchOptions{SearchContextSize: g.searchContext}
		}
		return g.client.ChatCompletion(ctx, req)
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: perplexity generate")
	}
	if g.citeSources {
		return resp.Answer(), nil
	}
	return resp.Text(), nil
}

// GeminiGenerator generates with a Gemini model.
type GeminiGenerator struct {
	client  gemini.Client
	timeout time.Duration
}

// Name implements Generator.
func (g *GeminiGenerator) Name() string { return config.ProviderGemini }

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", eris.Wrap(err, "llm: gemini generate")
	}
	return text, nil
}
