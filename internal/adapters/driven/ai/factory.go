// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"errors"
	"fmt"

	anthropicllm "github.com/custodia-labs/codelens/internal/adapters/driven/llm/anthropic"
	openaillm "github.com/custodia-labs/codelens/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/logger"
)

// Chain is the ordered list of LLM services built from settings.
type Chain struct {
	Providers []driven.LLMService
}

// Close releases all resources held by the chain.
func (c *Chain) Close() {
	for _, p := range c.Providers {
		_ = p.Close()
	}
}

// Names returns the provider names in call order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		names[i] = p.Name()
	}
	return names
}

// NewChain creates an LLM service for every configured provider, keeping
// the settings order. Providers without an API key are skipped, as are
// providers that fail to build. An empty chain is not an error: explanation
// requests then fail with domain.ErrConfig at call time.
func NewChain(settings domain.LLMSettings) *Chain {
	chain := &Chain{}
	for _, p := range settings.Configured() {
		svc, err := CreateLLMService(p)
		if err != nil {
			logger.Warn("skipping LLM provider", "provider", p.Name, "error", err)
			continue
		}
		chain.Providers = append(chain.Providers, svc)
	}

	if len(chain.Providers) == 0 {
		logger.Warn("no LLM provider configured; explanations are disabled")
	} else {
		logger.Debug("LLM provider chain ready", "providers", chain.Names())
	}
	return chain
}

// CreateLLMService creates the appropriate LLM service for one provider entry.
func CreateLLMService(p domain.ProviderSettings) (driven.LLMService, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("%w: provider %q is not configured", domain.ErrConfig, p.Name)
	}

	switch p.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			Name:    p.Name,
			APIKey:  p.APIKey,
			BaseURL: p.BaseURL,
			Model:   p.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			Name:    p.Name,
			APIKey:  p.APIKey,
			BaseURL: p.BaseURL,
			Model:   p.Model,
		})

	default:
		return nil, errors.Join(domain.ErrConfig, fmt.Errorf("unsupported LLM provider: %s", p.Provider))
	}
}
